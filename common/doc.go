// Copyright 2025 Dataspace GCP Contributors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package common holds the GCP configuration and the shared types the
extension adapters exchange: service accounts, access tokens, and the
adapter error wrapper.

Configuration is loaded from a YAML file (with ${ENV} expansion) or from
GCP_* environment variables, and validated eagerly so that adapters fail
fast on missing required fields instead of at first use.
*/
package common

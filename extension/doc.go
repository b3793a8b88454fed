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

// Package extension defines the plug-in contract the GCP adapters are
// packaged behind.
//
// # Lifecycle
//
// Extensions register with a Registry, initialize in registration order
// against a shared Runtime, and shut down in reverse order. An extension
// that fails to initialize aborts startup and unwinds the extensions
// already brought up.
//
// # Services
//
// Extensions publish the services they provide (vault, IAM, storage,
// provision manager) on the Runtime, so later extensions and the launcher
// can consume them by name.
package extension

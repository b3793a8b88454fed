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

// Package iam resolves GCP service accounts and mints short-lived access
// tokens for them.
//
// Accounts are addressed by their short name and resolved within the
// configured project. Tokens are minted via service account impersonation
// (IAM credentials API); an empty account name selects the application
// default credentials instead, with tokens drawn from the ambient
// environment.
package iam

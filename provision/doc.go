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

// Package provision prepares GCP resources for data transfers.
//
// # Kinds
//
// Each resource definition carries a ResourceKind, and the Manager
// dispatches to the one provisioner registered for that kind.
//
// The GCS provisioner creates destination buckets, grants the provider's
// service account upload access, and mints a transfer-scoped token. The
// BigQuery provisioner verifies the destination table exists and mints a
// token; it never creates tables, and its deprovision is a no-op.
//
// # Persistence
//
// With a PostgreSQL Store attached, the Manager records provisioned
// resources so a restarted or parallel instance can still deprovision
// them.
package provision

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

// Package launcher assembles the GCP extensions into a runnable service.
//
// It loads configuration, wires the extension registry and runtime,
// initializes extensions in dependency order, and exposes the
// operational HTTP endpoints (/health, /prometheus) with graceful
// shutdown on SIGINT/SIGTERM.
package launcher

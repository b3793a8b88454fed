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

package extension

import (
	"context"
	"time"
)

// Extension is a unit of GCP functionality plugged into the runtime.
// Extensions are initialized in registration order and shut down in
// reverse order.
type Extension interface {
	// Name returns the unique extension name.
	Name() string

	// Initialize wires the extension into the runtime. Services the
	// extension provides are registered on rt for later extensions to
	// consume.
	Initialize(ctx context.Context, rt *Runtime) error

	// Shutdown releases the extension's resources.
	Shutdown(ctx context.Context) error
}

// HealthReporter is optionally implemented by extensions that can probe
// their backing service.
type HealthReporter interface {
	HealthCheck(ctx context.Context) (*HealthStatus, error)
}

// HealthStatus represents the health of an extension.
type HealthStatus struct {
	Healthy   bool              `json:"healthy"`
	Latency   time.Duration     `json:"latency"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Error     string            `json:"error,omitempty"`
}

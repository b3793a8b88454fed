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

package vault

import (
	"context"
	"time"

	"dataspace/gcp/extension"
)

// healthProbeKey is a key no caller stores under; resolving it exercises
// the full Secret Manager round trip and legally yields an empty value.
const healthProbeKey = "dataspace-health-probe"

// Extension packages the Secret Manager vault as a runtime extension.
type Extension struct {
	vault *SecretManagerVault
}

// NewExtension creates an uninitialized vault extension.
func NewExtension() *Extension {
	return &Extension{}
}

// Name returns the extension name.
func (e *Extension) Name() string { return adapterName }

// Initialize builds the Secret Manager client from the runtime config and
// publishes the vault service.
func (e *Extension) Initialize(ctx context.Context, rt *extension.Runtime) error {
	v, err := NewSecretManagerVault(ctx, rt.Config(), rt.Logger())
	if err != nil {
		return err
	}

	e.vault = v
	return rt.RegisterService(extension.ServiceVault, Vault(v))
}

// Shutdown closes the Secret Manager client.
func (e *Extension) Shutdown(ctx context.Context) error {
	if e.vault == nil {
		return nil
	}
	return e.vault.Close()
}

// HealthCheck resolves a probe key. A missing secret is a healthy answer;
// only backend faults mark the vault unhealthy.
func (e *Extension) HealthCheck(ctx context.Context) (*extension.HealthStatus, error) {
	start := time.Now()

	_, err := e.vault.ResolveSecret(ctx, healthProbeKey)
	status := &extension.HealthStatus{
		Healthy:   err == nil,
		Latency:   time.Since(start),
		Timestamp: time.Now(),
	}
	if err != nil {
		status.Error = err.Error()
	}

	return status, nil
}

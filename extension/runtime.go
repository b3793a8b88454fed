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
	"fmt"
	"sync"

	"dataspace/gcp/common"
	"dataspace/gcp/shared/logger"
)

// Well-known service names extensions register under.
const (
	ServiceVault     = "vault"
	ServiceIAM       = "iam"
	ServiceStorage   = "storage"
	ServiceBigQuery  = "bigquery"
	ServiceProvision = "provision"
)

// Runtime carries the shared state extensions initialize against: the
// platform configuration, the structured logger, and a registry of
// services published by earlier extensions.
type Runtime struct {
	config *common.Config
	log    *logger.Logger

	mu       sync.RWMutex
	services map[string]interface{}
}

// NewRuntime creates a runtime around cfg and log.
func NewRuntime(cfg *common.Config, log *logger.Logger) *Runtime {
	return &Runtime{
		config:   cfg,
		log:      log,
		services: make(map[string]interface{}),
	}
}

// Config returns the platform configuration.
func (rt *Runtime) Config() *common.Config {
	return rt.config
}

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *logger.Logger {
	return rt.log
}

// RegisterService publishes svc under name. Registering the same name
// twice fails so extensions cannot silently shadow each other.
func (rt *Runtime) RegisterService(name string, svc interface{}) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if _, exists := rt.services[name]; exists {
		return fmt.Errorf("service '%s' already registered", name)
	}

	rt.services[name] = svc
	rt.log.Debug("service registered", map[string]interface{}{"service": name})
	return nil
}

// Service returns the service registered under name.
func (rt *Runtime) Service(name string) (interface{}, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	svc, exists := rt.services[name]
	if !exists {
		return nil, fmt.Errorf("service '%s' not found", name)
	}

	return svc, nil
}

// HasService reports whether a service is registered under name.
func (rt *Runtime) HasService(name string) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	_, exists := rt.services[name]
	return exists
}

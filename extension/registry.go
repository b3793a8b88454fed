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
	"fmt"
	"sync"
	"time"

	"dataspace/gcp/shared/logger"
)

// Registry manages the lifecycle of registered extensions.
// Thread-safe for concurrent access.
type Registry struct {
	mu          sync.RWMutex
	extensions  []Extension
	byName      map[string]Extension
	initialized []Extension
	log         *logger.Logger
}

// NewRegistry creates an empty extension registry.
func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		byName: make(map[string]Extension),
		log:    log,
	}
}

// Register adds an extension. Registration order determines
// initialization order. Returns an error if an extension with the same
// name is already registered.
func (r *Registry) Register(ext Extension) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := ext.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("extension '%s' already registered", name)
	}

	r.extensions = append(r.extensions, ext)
	r.byName[name] = ext
	r.log.Info("extension registered", map[string]interface{}{"extension": name})

	return nil
}

// Get retrieves an extension by name.
func (r *Registry) Get(name string) (Extension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext, exists := r.byName[name]
	if !exists {
		return nil, fmt.Errorf("extension '%s' not found", name)
	}

	return ext, nil
}

// List returns the names of all registered extensions in registration
// order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.extensions))
	for _, ext := range r.extensions {
		names = append(names, ext.Name())
	}

	return names
}

// Count returns the number of registered extensions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.extensions)
}

// InitializeAll initializes every registered extension in registration
// order. On the first failure the already-initialized extensions are shut
// down in reverse order and the failure is returned.
func (r *Registry) InitializeAll(ctx context.Context, rt *Runtime) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range r.extensions {
		if err := ext.Initialize(ctx, rt); err != nil {
			r.log.ErrorWith("extension initialization failed", err, map[string]interface{}{
				"extension": ext.Name(),
			})
			r.shutdownLocked(ctx)
			return fmt.Errorf("failed to initialize extension '%s': %w", ext.Name(), err)
		}

		r.initialized = append(r.initialized, ext)
		r.log.Info("extension initialized", map[string]interface{}{"extension": ext.Name()})
	}

	return nil
}

// ShutdownAll shuts down the initialized extensions in reverse
// initialization order. Individual failures are logged, not returned, so
// every extension gets a chance to release its resources.
func (r *Registry) ShutdownAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shutdownLocked(ctx)
}

func (r *Registry) shutdownLocked(ctx context.Context) {
	for i := len(r.initialized) - 1; i >= 0; i-- {
		ext := r.initialized[i]
		if err := ext.Shutdown(ctx); err != nil {
			r.log.ErrorWith("extension shutdown failed", err, map[string]interface{}{
				"extension": ext.Name(),
			})
			continue
		}
		r.log.Info("extension shut down", map[string]interface{}{"extension": ext.Name()})
	}
	r.initialized = nil
}

// HealthCheck probes every extension implementing HealthReporter.
// Extensions without a health probe are reported healthy.
func (r *Registry) HealthCheck(ctx context.Context) map[string]*HealthStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make(map[string]*HealthStatus, len(r.extensions))

	for _, ext := range r.extensions {
		reporter, ok := ext.(HealthReporter)
		if !ok {
			results[ext.Name()] = &HealthStatus{Healthy: true, Timestamp: time.Now()}
			continue
		}

		status, err := reporter.HealthCheck(ctx)
		if err != nil {
			r.log.ErrorWith("health check failed", err, map[string]interface{}{
				"extension": ext.Name(),
			})
			status = &HealthStatus{Healthy: false, Error: err.Error(), Timestamp: time.Now()}
		}
		results[ext.Name()] = status
	}

	return results
}

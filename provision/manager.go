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

package provision

import (
	"context"
	"fmt"
	"sync"

	"dataspace/gcp/shared/logger"
)

// Manager routes provision and deprovision requests to the provisioner
// registered for the resource kind. Thread-safe for concurrent access.
// With a Store attached, provisioned resources survive restarts and can
// be deprovisioned by a different instance.
type Manager struct {
	mu           sync.RWMutex
	provisioners map[ResourceKind]Provisioner
	resources    map[string]*ProvisionedResource
	store        *Store
	log          *logger.Logger
}

// NewManager creates a manager without persistence.
func NewManager(log *logger.Logger) *Manager {
	return &Manager{
		provisioners: make(map[ResourceKind]Provisioner),
		resources:    make(map[string]*ProvisionedResource),
		log:          log,
	}
}

// NewManagerWithStore creates a manager persisting provisioned resources
// to store, loading whatever previous instances left behind.
func NewManagerWithStore(log *logger.Logger, store *Store) (*Manager, error) {
	m := NewManager(log)
	m.store = store

	resources, err := store.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load provisioned resources: %w", err)
	}

	for _, res := range resources {
		m.resources[res.ID] = res
	}

	if len(resources) > 0 {
		m.log.Info("provisioned resources loaded", map[string]interface{}{"count": len(resources)})
	}

	return m, nil
}

// Register adds a provisioner. Each resource kind takes exactly one
// provisioner.
func (m *Manager) Register(p Provisioner) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kind := p.Kind()
	if _, exists := m.provisioners[kind]; exists {
		return fmt.Errorf("provisioner for kind '%s' already registered", kind)
	}

	m.provisioners[kind] = p
	m.log.Info("provisioner registered", map[string]interface{}{"kind": string(kind)})

	return nil
}

// Kinds returns the resource kinds with a registered provisioner.
func (m *Manager) Kinds() []ResourceKind {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kinds := make([]ResourceKind, 0, len(m.provisioners))
	for kind := range m.provisioners {
		kinds = append(kinds, kind)
	}

	return kinds
}

// Provision dispatches def to the provisioner registered for its kind and
// records the provisioned resource.
func (m *Manager) Provision(ctx context.Context, def Definition) (*ProvisionResponse, error) {
	p, err := m.provisioner(def.Kind())
	if err != nil {
		return nil, err
	}

	resp, err := p.Provision(ctx, def)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.resources[resp.Resource.ID] = &resp.Resource
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(ctx, &resp.Resource); err != nil {
			m.log.ErrorWith("failed to persist provisioned resource", err, map[string]interface{}{
				"resource": resp.Resource.ID,
			})
			// Deliberately not failing: the resource is provisioned.
		}
	}

	return resp, nil
}

// Deprovision tears down the resource with the given id.
func (m *Manager) Deprovision(ctx context.Context, resourceID string) (*DeprovisionedResource, error) {
	res, err := m.resource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	p, err := m.provisioner(res.Kind)
	if err != nil {
		return nil, err
	}

	out, err := p.Deprovision(ctx, res)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	delete(m.resources, resourceID)
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Delete(ctx, resourceID); err != nil {
			m.log.ErrorWith("failed to delete provisioned resource record", err, map[string]interface{}{
				"resource": resourceID,
			})
		}
	}

	return out, nil
}

// Resources returns the currently provisioned resources.
func (m *Manager) Resources() []*ProvisionedResource {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resources := make([]*ProvisionedResource, 0, len(m.resources))
	for _, res := range m.resources {
		resources = append(resources, res)
	}

	return resources
}

func (m *Manager) provisioner(kind ResourceKind) (Provisioner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.provisioners[kind]
	if !exists {
		return nil, fmt.Errorf("no provisioner registered for kind '%s'", kind)
	}

	return p, nil
}

// resource looks the resource up in memory, falling back to the store for
// resources provisioned by a previous or parallel instance.
func (m *Manager) resource(ctx context.Context, resourceID string) (*ProvisionedResource, error) {
	m.mu.RLock()
	res, exists := m.resources[resourceID]
	m.mu.RUnlock()

	if exists {
		return res, nil
	}

	if m.store == nil {
		return nil, fmt.Errorf("provisioned resource '%s' not found", resourceID)
	}

	res, err := m.store.Get(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.resources[resourceID] = res
	m.mu.Unlock()

	return res, nil
}

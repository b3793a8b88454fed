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

	"dataspace/gcp/bigquery"
	"dataspace/gcp/extension"
	"dataspace/gcp/iam"
	"dataspace/gcp/storage"
)

const extensionName = "provision-gcp"

// Extension packages the provisioner framework as a runtime extension.
// It consumes the IAM, storage, and BigQuery services, so their
// extensions must be registered first.
type Extension struct {
	manager *Manager
	store   *Store
}

// NewExtension creates an uninitialized provision extension.
func NewExtension() *Extension {
	return &Extension{}
}

// Name returns the extension name.
func (e *Extension) Name() string { return extensionName }

// Initialize builds the provisioners from the published services and
// registers the provision manager.
func (e *Extension) Initialize(ctx context.Context, rt *extension.Runtime) error {
	iamSvc, err := lookup[iam.Service](rt, extension.ServiceIAM)
	if err != nil {
		return err
	}
	storageSvc, err := lookup[storage.Service](rt, extension.ServiceStorage)
	if err != nil {
		return err
	}
	bqSvc, err := lookup[bigquery.Service](rt, extension.ServiceBigQuery)
	if err != nil {
		return err
	}

	cfg := rt.Config()
	log := rt.Logger()

	if cfg.DatabaseURL != "" {
		store, err := NewStore(cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		e.store = store

		e.manager, err = NewManagerWithStore(log, store)
		if err != nil {
			return err
		}
	} else {
		e.manager = NewManager(log)
	}

	if err := e.manager.Register(NewGcsProvisioner(storageSvc, iamSvc, log)); err != nil {
		return err
	}
	if err := e.manager.Register(NewBigQueryProvisioner(cfg, bqSvc, iamSvc, log)); err != nil {
		return err
	}

	return rt.RegisterService(extension.ServiceProvision, e.manager)
}

// Shutdown closes the resource store.
func (e *Extension) Shutdown(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

func lookup[T any](rt *extension.Runtime, name string) (T, error) {
	var zero T

	svc, err := rt.Service(name)
	if err != nil {
		return zero, err
	}

	typed, ok := svc.(T)
	if !ok {
		return zero, fmt.Errorf("service '%s' has unexpected type %T", name, svc)
	}

	return typed, nil
}

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

package storage

import (
	"context"

	"dataspace/gcp/extension"
)

// Extension packages the GCS storage service as a runtime extension.
type Extension struct {
	service *StorageService
}

// NewExtension creates an uninitialized storage extension.
func NewExtension() *Extension {
	return &Extension{}
}

// Name returns the extension name.
func (e *Extension) Name() string { return adapterName }

// Initialize builds the GCS client from the runtime config and publishes
// the storage service.
func (e *Extension) Initialize(ctx context.Context, rt *extension.Runtime) error {
	svc, err := NewService(ctx, rt.Config(), rt.Logger())
	if err != nil {
		return err
	}

	e.service = svc
	return rt.RegisterService(extension.ServiceStorage, Service(svc))
}

// Shutdown closes the GCS client.
func (e *Extension) Shutdown(ctx context.Context) error {
	if e.service == nil {
		return nil
	}
	return e.service.Close()
}

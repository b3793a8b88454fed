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

package bigquery

import (
	"context"
	"fmt"

	"dataspace/gcp/extension"
	"dataspace/gcp/iam"
)

// Extension packages the BigQuery table service as a runtime extension.
// It consumes the IAM service, so the IAM extension must be registered
// first.
type Extension struct{}

// NewExtension creates an uninitialized BigQuery extension.
func NewExtension() *Extension {
	return &Extension{}
}

// Name returns the extension name.
func (e *Extension) Name() string { return adapterName }

// Initialize publishes the BigQuery table service.
func (e *Extension) Initialize(ctx context.Context, rt *extension.Runtime) error {
	svc, err := rt.Service(extension.ServiceIAM)
	if err != nil {
		return err
	}

	iamSvc, ok := svc.(iam.Service)
	if !ok {
		return fmt.Errorf("service '%s' is not an IAM service", extension.ServiceIAM)
	}

	factory := NewClientFactory(rt.Config(), rt.Logger(), iamSvc)
	return rt.RegisterService(extension.ServiceBigQuery, Service(NewTableService(factory, rt.Logger())))
}

// Shutdown is a no-op: clients are created per call.
func (e *Extension) Shutdown(ctx context.Context) error { return nil }

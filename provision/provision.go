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

	"dataspace/gcp/common"
)

// ResourceKind identifies the type of resource a definition describes.
// Provisioners register for exactly one kind, and dispatch happens on the
// kind instead of inspecting definition types.
type ResourceKind string

const (
	KindGcsBucket     ResourceKind = "gcs-bucket"
	KindBigQueryTable ResourceKind = "bigquery-table"
)

// Definition describes a resource to provision.
type Definition interface {
	Kind() ResourceKind
}

// ProvisionedResource records a resource a provisioner has prepared for a
// transfer.
type ProvisionedResource struct {
	ID                string            `json:"id"`
	Kind              ResourceKind      `json:"kind"`
	Name              string            `json:"name"`
	TransferProcessID string            `json:"transfer_process_id"`
	Properties        map[string]string `json:"properties"`
	HasToken          bool              `json:"has_token"`
}

// ProvisionResponse is the result of a successful provision: the resource
// and the access token granting the transfer access to it.
type ProvisionResponse struct {
	Resource ProvisionedResource
	Token    common.AccessToken
}

// DeprovisionedResource acknowledges the teardown of a provisioned
// resource.
type DeprovisionedResource struct {
	ProvisionedResourceID string `json:"provisioned_resource_id"`
}

// Provisioner prepares and tears down resources of a single kind.
type Provisioner interface {
	// Kind returns the resource kind this provisioner handles.
	Kind() ResourceKind

	// Provision prepares the resource described by def.
	Provision(ctx context.Context, def Definition) (*ProvisionResponse, error)

	// Deprovision tears the resource down.
	Deprovision(ctx context.Context, res *ProvisionedResource) (*DeprovisionedResource, error)
}

// Property keys of GCS provisioned resources.
const (
	PropBucketName          = "bucket_name"
	PropLocation            = "location"
	PropStorageClass        = "storage_class"
	PropServiceAccountName  = "service_account_name"
	PropServiceAccountEmail = "service_account_email"
)

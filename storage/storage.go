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

	"cloud.google.com/go/iam"

	"dataspace/gcp/common"
)

// RoleObjectCreator lets the data provider upload objects into a
// provisioned bucket without granting read or delete access.
const RoleObjectCreator iam.RoleName = "roles/storage.objectCreator"

// Bucket identifies a GCS bucket and its placement.
type Bucket struct {
	Name         string
	Location     string
	StorageClass string
}

// Service wraps the GCS bucket operations the provisioners need.
type Service interface {
	// GetOrCreateBucket returns the bucket with the given name, creating
	// it when absent. An existing bucket in a different location is an
	// error.
	GetOrCreateBucket(ctx context.Context, bucket Bucket) (*Bucket, error)

	// AddRoleBinding grants account the role on the bucket.
	AddRoleBinding(ctx context.Context, bucket *Bucket, account common.ServiceAccount, role iam.RoleName) error

	// AddProviderPermissions grants account the permissions the data
	// provider needs to upload into the bucket.
	AddProviderPermissions(ctx context.Context, bucket *Bucket, account common.ServiceAccount) error

	// IsEmpty reports whether the bucket holds no objects.
	IsEmpty(ctx context.Context, bucketName string) (bool, error)

	// DeleteBucket removes the bucket. Deleting an absent bucket is not
	// an error.
	DeleteBucket(ctx context.Context, bucketName string) error
}

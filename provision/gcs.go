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
	"time"

	"github.com/google/uuid"

	"dataspace/gcp/common"
	"dataspace/gcp/iam"
	"dataspace/gcp/metrics"
	"dataspace/gcp/shared/logger"
	"dataspace/gcp/storage"
)

const gcsProvisionerName = "provision-gcs"

// GcsProvisioner provisions GCS buckets as transfer destinations: it
// creates the bucket, grants the provider's service account upload
// permissions, and mints an access token scoped to the transfer.
type GcsProvisioner struct {
	storage storage.Service
	iam     iam.Service
	log     *logger.Logger
}

var _ Provisioner = (*GcsProvisioner)(nil)

// NewGcsProvisioner creates a GCS provisioner.
func NewGcsProvisioner(storageSvc storage.Service, iamSvc iam.Service, log *logger.Logger) *GcsProvisioner {
	return &GcsProvisioner{
		storage: storageSvc,
		iam:     iamSvc,
		log:     log,
	}
}

// Kind returns KindGcsBucket.
func (p *GcsProvisioner) Kind() ResourceKind { return KindGcsBucket }

// Provision creates the bucket described by def and grants the resolved
// service account upload access.
func (p *GcsProvisioner) Provision(ctx context.Context, def Definition) (resp *ProvisionResponse, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(gcsProvisionerName, "provision", time.Since(start), err) }()

	gcsDef, ok := def.(*GcsResourceDefinition)
	if !ok {
		return nil, common.NewError(gcsProvisionerName, "Provision", "definition is not a GCS resource definition", nil)
	}

	bucketName := gcsDef.BucketName
	if bucketName == "" {
		bucketName = gcsDef.TransferProcessID
		p.log.Debug("bucket name derived from transfer process", map[string]interface{}{
			"bucket": bucketName,
		})
	}

	bucket, err := p.storage.GetOrCreateBucket(ctx, storage.Bucket{
		Name:         bucketName,
		Location:     gcsDef.Location,
		StorageClass: gcsDef.StorageClass,
	})
	if err != nil {
		return nil, err
	}

	account, err := p.iam.GetServiceAccount(ctx, gcsDef.ServiceAccountName)
	if err != nil {
		return nil, err
	}

	if err := p.storage.AddProviderPermissions(ctx, bucket, account); err != nil {
		return nil, err
	}

	token, err := p.iam.CreateAccessToken(ctx, account, iam.ScopeStorageReadWrite)
	if err != nil {
		return nil, err
	}

	p.log.Info("bucket provisioned", map[string]interface{}{
		"bucket":           bucket.Name,
		"transfer_process": gcsDef.TransferProcessID,
		"account":          account.Email,
	})

	resource := ProvisionedResource{
		ID:                uuid.NewString(),
		Kind:              KindGcsBucket,
		Name:              bucket.Name + "-bucket",
		TransferProcessID: gcsDef.TransferProcessID,
		Properties: map[string]string{
			PropBucketName:          bucket.Name,
			PropLocation:            bucket.Location,
			PropStorageClass:        bucket.StorageClass,
			PropServiceAccountName:  account.Name,
			PropServiceAccountEmail: account.Email,
		},
		HasToken: true,
	}

	return &ProvisionResponse{Resource: resource, Token: token}, nil
}

// Deprovision deletes the provisioned bucket. A bucket still holding
// objects is not deleted.
func (p *GcsProvisioner) Deprovision(ctx context.Context, res *ProvisionedResource) (out *DeprovisionedResource, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(gcsProvisionerName, "deprovision", time.Since(start), err) }()

	bucketName := res.Properties[PropBucketName]
	if bucketName == "" {
		return nil, common.NewError(gcsProvisionerName, "Deprovision", "resource "+res.ID+" has no bucket name", nil)
	}

	empty, err := p.storage.IsEmpty(ctx, bucketName)
	if err != nil {
		return nil, err
	}
	if !empty {
		return nil, common.NewError(gcsProvisionerName, "Deprovision", "bucket "+bucketName+" is not empty", nil)
	}

	if err := p.storage.DeleteBucket(ctx, bucketName); err != nil {
		return nil, err
	}

	p.log.Info("bucket deprovisioned", map[string]interface{}{"bucket": bucketName})
	return &DeprovisionedResource{ProvisionedResourceID: res.ID}, nil
}

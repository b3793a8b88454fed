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
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/iam"
	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"dataspace/gcp/common"
	"dataspace/gcp/metrics"
	"dataspace/gcp/shared/logger"
)

const adapterName = "storage-gcp"

// StorageService implements Service on the GCS API.
type StorageService struct {
	project string
	client  *gcs.Client
	log     *logger.Logger
}

var _ Service = (*StorageService)(nil)

// NewService builds a storage service, authenticated through the
// credentials carried by cfg, or Application Default Credentials when
// none are set.
func NewService(ctx context.Context, cfg *common.Config, log *logger.Logger) (*StorageService, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	} else if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, common.NewError(adapterName, "New", "failed to create GCS client", err)
	}

	return NewServiceWithClient(cfg, log, client), nil
}

// NewServiceWithClient builds a storage service around an existing
// client.
func NewServiceWithClient(cfg *common.Config, log *logger.Logger, client *gcs.Client) *StorageService {
	return &StorageService{
		project: cfg.ProjectID,
		client:  client,
		log:     log,
	}
}

// GetOrCreateBucket returns the named bucket, creating it in the
// requested location when absent. An existing bucket must already live in
// the requested location.
func (s *StorageService) GetOrCreateBucket(ctx context.Context, bucket Bucket) (result *Bucket, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "get_or_create_bucket", time.Since(start), err) }()

	if s.client == nil {
		return nil, common.NewError(adapterName, "GetOrCreateBucket", "not connected", nil)
	}

	handle := s.client.Bucket(bucket.Name)

	attrs, err := handle.Attrs(ctx)
	if err == nil {
		if !locationsMatch(attrs.Location, bucket.Location) {
			return nil, common.NewError(adapterName, "GetOrCreateBucket",
				"bucket "+bucket.Name+" already exists in location "+attrs.Location, nil)
		}
		s.log.Debug("bucket exists", map[string]interface{}{
			"bucket":   bucket.Name,
			"location": attrs.Location,
		})
		return &Bucket{Name: attrs.Name, Location: attrs.Location, StorageClass: attrs.StorageClass}, nil
	}

	if !errors.Is(err, gcs.ErrBucketNotExist) {
		return nil, common.NewError(adapterName, "GetOrCreateBucket", "failed to look up bucket "+bucket.Name, err)
	}

	if err := handle.Create(ctx, s.project, &gcs.BucketAttrs{
		Location:     bucket.Location,
		StorageClass: bucket.StorageClass,
	}); err != nil {
		return nil, common.NewError(adapterName, "GetOrCreateBucket", "failed to create bucket "+bucket.Name, err)
	}

	s.log.Info("bucket created", map[string]interface{}{
		"bucket":        bucket.Name,
		"location":      bucket.Location,
		"storage_class": bucket.StorageClass,
	})

	return &bucket, nil
}

// AddRoleBinding grants account the role on the bucket via its IAM
// policy.
func (s *StorageService) AddRoleBinding(ctx context.Context, bucket *Bucket, account common.ServiceAccount, role iam.RoleName) (err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "add_role_binding", time.Since(start), err) }()

	if s.client == nil {
		return common.NewError(adapterName, "AddRoleBinding", "not connected", nil)
	}

	handle := s.client.Bucket(bucket.Name).IAM()

	policy, err := handle.Policy(ctx)
	if err != nil {
		return common.NewError(adapterName, "AddRoleBinding", "failed to read IAM policy of bucket "+bucket.Name, err)
	}

	policy.Add(memberServiceAccount(account), role)

	if err := handle.SetPolicy(ctx, policy); err != nil {
		return common.NewError(adapterName, "AddRoleBinding", "failed to update IAM policy of bucket "+bucket.Name, err)
	}

	s.log.Info("role binding added", map[string]interface{}{
		"bucket":  bucket.Name,
		"member":  account.Email,
		"role":    string(role),
	})

	return nil
}

// AddProviderPermissions grants account write access for the data
// provider's upload.
func (s *StorageService) AddProviderPermissions(ctx context.Context, bucket *Bucket, account common.ServiceAccount) error {
	return s.AddRoleBinding(ctx, bucket, account, RoleObjectCreator)
}

// IsEmpty reports whether the bucket holds no objects.
func (s *StorageService) IsEmpty(ctx context.Context, bucketName string) (empty bool, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "is_empty", time.Since(start), err) }()

	if s.client == nil {
		return false, common.NewError(adapterName, "IsEmpty", "not connected", nil)
	}

	it := s.client.Bucket(bucketName).Objects(ctx, nil)

	_, err = it.Next()
	if err == iterator.Done {
		return true, nil
	}
	if err != nil {
		return false, common.NewError(adapterName, "IsEmpty", "failed to list objects of bucket "+bucketName, err)
	}

	return false, nil
}

// DeleteBucket removes the bucket. An absent bucket is treated as already
// deleted.
func (s *StorageService) DeleteBucket(ctx context.Context, bucketName string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "delete_bucket", time.Since(start), err) }()

	if s.client == nil {
		return common.NewError(adapterName, "DeleteBucket", "not connected", nil)
	}

	err = s.client.Bucket(bucketName).Delete(ctx)
	if errors.Is(err, gcs.ErrBucketNotExist) {
		s.log.Debug("bucket already gone", map[string]interface{}{"bucket": bucketName})
		return nil
	}
	if err != nil {
		return common.NewError(adapterName, "DeleteBucket", "failed to delete bucket "+bucketName, err)
	}

	s.log.Info("bucket deleted", map[string]interface{}{"bucket": bucketName})
	return nil
}

// Close releases the underlying client.
func (s *StorageService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// locationsMatch compares bucket locations the way GCS reports them,
// ignoring case.
func locationsMatch(a, b string) bool {
	return strings.EqualFold(a, b)
}

// memberServiceAccount renders the IAM member string for a service
// account.
func memberServiceAccount(account common.ServiceAccount) string {
	return "serviceAccount:" + account.Email
}

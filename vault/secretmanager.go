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

package vault

import (
	"context"
	"fmt"
	"hash/crc32"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dataspace/gcp/common"
	"dataspace/gcp/metrics"
	"dataspace/gcp/shared/logger"
)

const (
	adapterName = "vault-gcp"

	// latestVersionAlias selects the most recent version of a secret.
	latestVersionAlias = "latest"
)

// SecretClient is the subset of the Secret Manager client the vault uses.
// Narrowed for testability; satisfied by *secretmanager.Client.
type SecretClient interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	CreateSecret(ctx context.Context, req *secretmanagerpb.CreateSecretRequest, opts ...gax.CallOption) (*secretmanagerpb.Secret, error)
	AddSecretVersion(ctx context.Context, req *secretmanagerpb.AddSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.SecretVersion, error)
	DeleteSecret(ctx context.Context, req *secretmanagerpb.DeleteSecretRequest, opts ...gax.CallOption) error
	Close() error
}

var _ SecretClient = (*secretmanager.Client)(nil)

// crc32cTable is the Castagnoli table Secret Manager uses for payload
// integrity checks.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// SecretManagerVault implements Vault on top of GCP Secret Manager.
// Secrets created by the vault use user-managed replication with a single
// replica in the configured region.
type SecretManagerVault struct {
	project string
	region  string
	client  SecretClient
	log     *logger.Logger
}

// NewSecretManagerVault builds a vault with a real Secret Manager client,
// authenticated through the credentials carried by cfg, or Application
// Default Credentials when none are set.
func NewSecretManagerVault(ctx context.Context, cfg *common.Config, log *logger.Logger) (*SecretManagerVault, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	} else if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, common.NewError(adapterName, "New", "failed to create Secret Manager client", err)
	}

	return NewSecretManagerVaultWithClient(cfg, log, client), nil
}

// NewSecretManagerVaultWithClient builds a vault around an existing
// (already authenticated) client.
func NewSecretManagerVaultWithClient(cfg *common.Config, log *logger.Logger, client SecretClient) *SecretManagerVault {
	return &SecretManagerVault{
		project: cfg.ProjectID,
		region:  cfg.Region,
		client:  client,
		log:     log,
	}
}

// ResolveSecret retrieves the latest version of the secret stored under
// key. A missing secret yields an empty string and no error.
func (v *SecretManagerVault) ResolveSecret(ctx context.Context, key string) (value string, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "resolve", time.Since(start), err) }()

	key = v.normalize(key)

	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/%s", v.project, key, latestVersionAlias),
	}

	resp, err := v.client.AccessSecretVersion(ctx, req)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			v.log.DebugWith("secret not found or has no version: "+key, err, nil)
			return "", nil
		}
		return "", v.classify("ResolveSecret", key, err)
	}

	payload := resp.GetPayload()
	if payload == nil {
		return "", common.NewError(adapterName, "ResolveSecret", "empty payload for secret "+key, nil)
	}

	data := payload.GetData()
	if payload.DataCrc32C != nil {
		if int64(crc32.Checksum(data, crc32cTable)) != payload.GetDataCrc32C() {
			return "", common.NewError(adapterName, "ResolveSecret", "payload data corruption detected for secret "+key, nil)
		}
	}

	return string(data), nil
}

// StoreSecret saves value under key. The key must not already hold a
// secret: existing secrets are never overwritten.
func (v *SecretManagerVault) StoreSecret(ctx context.Context, key, value string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "store", time.Since(start), err) }()

	key = v.normalize(key)

	secret := &secretmanagerpb.Secret{
		Replication: &secretmanagerpb.Replication{
			Replication: &secretmanagerpb.Replication_UserManaged_{
				UserManaged: &secretmanagerpb.Replication_UserManaged{
					Replicas: []*secretmanagerpb.Replication_UserManaged_Replica{
						{Location: v.region},
					},
				},
			},
		},
	}

	created, err := v.client.CreateSecret(ctx, &secretmanagerpb.CreateSecretRequest{
		Parent:   "projects/" + v.project,
		SecretId: key,
		Secret:   secret,
	})
	if err != nil {
		return v.classify("StoreSecret", key, err)
	}

	data := []byte(value)
	checksum := int64(crc32.Checksum(data, crc32cTable))

	_, err = v.client.AddSecretVersion(ctx, &secretmanagerpb.AddSecretVersionRequest{
		Parent: created.GetName(),
		Payload: &secretmanagerpb.SecretPayload{
			Data:       data,
			DataCrc32C: &checksum,
		},
	})
	if err != nil {
		return v.classify("StoreSecret", key, err)
	}

	return nil
}

// DeleteSecret removes the secret stored under key, failing when no such
// secret exists.
func (v *SecretManagerVault) DeleteSecret(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "delete", time.Since(start), err) }()

	key = v.normalize(key)

	req := &secretmanagerpb.DeleteSecretRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s", v.project, key),
	}

	if err := v.client.DeleteSecret(ctx, req); err != nil {
		return v.classify("DeleteSecret", key, err)
	}

	return nil
}

// Close releases the underlying client.
func (v *SecretManagerVault) Close() error {
	return v.client.Close()
}

// normalize rewrites key to satisfy Secret Manager naming constraints and
// logs the rewrite so operators can trace the original key.
func (v *SecretManagerVault) normalize(key string) string {
	fixed, modified := NormalizeKey(key)
	if modified {
		metrics.RecordKeySanitized()
		v.log.Warn("secret key sanitized", map[string]interface{}{
			"original": key,
			"fixed":    fixed,
		})
	}
	return fixed
}

// classify maps a backend error to one of the three failure kinds:
// not-found, already-exists, or runtime error. Expected domain conditions
// log at debug severity, unexpected backend faults at error severity.
func (v *SecretManagerVault) classify(op, key string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		msg := "secret not found or has no version: " + key
		v.log.DebugWith(msg, err, nil)
		return common.NewError(adapterName, op, msg, ErrNotFound)
	case codes.AlreadyExists:
		msg := "secret already exists: " + key
		v.log.DebugWith(msg, err, nil)
		return common.NewError(adapterName, op, msg, ErrAlreadyExists)
	default:
		msg := "runtime error for secret " + key
		v.log.ErrorWith(msg, err, nil)
		return common.NewError(adapterName, op, msg, err)
	}
}

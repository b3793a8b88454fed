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
	"errors"

	"github.com/google/uuid"

	"dataspace/gcp/bigquery"
)

// GcsResourceDefinition describes a GCS bucket to provision as a transfer
// destination.
type GcsResourceDefinition struct {
	ID                 string `json:"id"`
	TransferProcessID  string `json:"transfer_process_id"`
	Location           string `json:"location"`
	StorageClass       string `json:"storage_class"`
	BucketName         string `json:"bucket_name,omitempty"`
	ServiceAccountName string `json:"service_account_name,omitempty"`
}

// NewGcsResourceDefinition creates a validated definition. Location and
// storage class are required. The bucket name may stay empty: the
// provisioner then derives one from the transfer process id. A missing
// transfer process id is replaced by a generated one.
func NewGcsResourceDefinition(transferProcessID, location, storageClass string) (*GcsResourceDefinition, error) {
	if location == "" {
		return nil, errors.New("gcs resource definition: location is required")
	}
	if storageClass == "" {
		return nil, errors.New("gcs resource definition: storage class is required")
	}
	if transferProcessID == "" {
		transferProcessID = uuid.NewString()
	}

	return &GcsResourceDefinition{
		ID:                uuid.NewString(),
		TransferProcessID: transferProcessID,
		Location:          location,
		StorageClass:      storageClass,
	}, nil
}

// Kind returns KindGcsBucket.
func (d *GcsResourceDefinition) Kind() ResourceKind { return KindGcsBucket }

// BigQueryResourceDefinition describes a BigQuery table expected to exist
// as a transfer destination.
type BigQueryResourceDefinition struct {
	ID                 string `json:"id"`
	TransferProcessID  string `json:"transfer_process_id"`
	Project            string `json:"project,omitempty"`
	Dataset            string `json:"dataset"`
	Table              string `json:"table,omitempty"`
	Query              string `json:"query,omitempty"`
	ServiceAccountName string `json:"service_account_name,omitempty"`
	CustomerName       string `json:"customer_name,omitempty"`
}

// NewBigQueryResourceDefinition creates a validated definition from a
// BigQuery data address. The dataset is required. Project falls back to
// the platform project at provision time, and a missing table name is
// derived from the definition id.
func NewBigQueryResourceDefinition(transferProcessID string, addr bigquery.DataAddress) (*BigQueryResourceDefinition, error) {
	if addr.Dataset() == "" {
		return nil, errors.New("bigquery resource definition: dataset is required")
	}
	if transferProcessID == "" {
		transferProcessID = uuid.NewString()
	}

	return &BigQueryResourceDefinition{
		ID:                 uuid.NewString(),
		TransferProcessID:  transferProcessID,
		Project:            addr.Project(),
		Dataset:            addr.Dataset(),
		Table:              addr.Table(),
		Query:              addr.Query(),
		ServiceAccountName: addr.ServiceAccountName(),
		CustomerName:       addr.CustomerName(),
	}, nil
}

// Kind returns KindBigQueryTable.
func (d *BigQueryResourceDefinition) Kind() ResourceKind { return KindBigQueryTable }

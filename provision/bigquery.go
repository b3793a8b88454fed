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

	"dataspace/gcp/bigquery"
	"dataspace/gcp/common"
	"dataspace/gcp/iam"
	"dataspace/gcp/metrics"
	"dataspace/gcp/shared/logger"
)

const bigQueryProvisionerName = "provision-bigquery"

// BigQueryProvisioner verifies the destination table of a BigQuery
// transfer and mints the access token the transfer uses. Tables are
// expected to already exist: a missing table is a fatal provisioning
// error.
type BigQueryProvisioner struct {
	project  string
	bigquery bigquery.Service
	iam      iam.Service
	log      *logger.Logger
}

var _ Provisioner = (*BigQueryProvisioner)(nil)

// NewBigQueryProvisioner creates a BigQuery provisioner.
func NewBigQueryProvisioner(cfg *common.Config, bqSvc bigquery.Service, iamSvc iam.Service, log *logger.Logger) *BigQueryProvisioner {
	return &BigQueryProvisioner{
		project:  cfg.ProjectID,
		bigquery: bqSvc,
		iam:      iamSvc,
		log:      log,
	}
}

// Kind returns KindBigQueryTable.
func (p *BigQueryProvisioner) Kind() ResourceKind { return KindBigQueryTable }

// Provision verifies the target table exists and mints a token for it.
func (p *BigQueryProvisioner) Provision(ctx context.Context, def Definition) (resp *ProvisionResponse, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(bigQueryProvisionerName, "provision", time.Since(start), err) }()

	bqDef, ok := def.(*BigQueryResourceDefinition)
	if !ok {
		return nil, common.NewError(bigQueryProvisionerName, "Provision", "definition is not a BigQuery resource definition", nil)
	}

	target := p.target(bqDef)

	account, err := p.iam.GetServiceAccount(ctx, bqDef.ServiceAccountName)
	if err != nil {
		return nil, err
	}

	exists, err := p.bigquery.TableExists(ctx, account, target)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.NewError(bigQueryProvisionerName, "Provision", "table "+target.String()+" doesn't exist", nil)
	}

	token, err := p.iam.CreateAccessToken(ctx, account, iam.ScopeBigQuery)
	if err != nil {
		return nil, err
	}

	p.log.Info("table verified", map[string]interface{}{
		"table":            target.String(),
		"transfer_process": bqDef.TransferProcessID,
		"account":          account.Email,
	})

	resource := ProvisionedResource{
		ID:                uuid.NewString(),
		Kind:              KindBigQueryTable,
		Name:              target.Table + "-table",
		TransferProcessID: bqDef.TransferProcessID,
		Properties: map[string]string{
			bigquery.FieldProject:            target.Project,
			bigquery.FieldDataset:            target.Dataset,
			bigquery.FieldTable:              target.Table,
			bigquery.FieldServiceAccountName: account.Name,
		},
		HasToken: true,
	}

	return &ProvisionResponse{Resource: resource, Token: token}, nil
}

// Deprovision is a no-op: the provisioner never creates tables, so there
// is nothing to tear down.
func (p *BigQueryProvisioner) Deprovision(ctx context.Context, res *ProvisionedResource) (*DeprovisionedResource, error) {
	return &DeprovisionedResource{ProvisionedResourceID: res.ID}, nil
}

// target resolves the definition's table target, defaulting the project
// to the platform project and the table name to the definition id.
func (p *BigQueryProvisioner) target(def *BigQueryResourceDefinition) bigquery.Target {
	project := def.Project
	if project == "" {
		project = p.project
	}

	table := def.Table
	if table == "" {
		table = def.ID
		p.log.Debug("table name derived from definition", map[string]interface{}{"table": table})
	}

	return bigquery.Target{Project: project, Dataset: def.Dataset, Table: table}
}

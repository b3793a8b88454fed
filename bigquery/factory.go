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
	"errors"
	"net/http"
	"time"

	bq "cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"dataspace/gcp/common"
	"dataspace/gcp/iam"
	"dataspace/gcp/metrics"
	"dataspace/gcp/shared/logger"
)

const adapterName = "bigquery-gcp"

// Service exposes the BigQuery checks the provisioner relies on.
type Service interface {
	// TableExists reports whether the target table exists, accessed as
	// the given service account.
	TableExists(ctx context.Context, account common.ServiceAccount, target Target) (bool, error)
}

// ClientFactory builds BigQuery clients authenticated as a service
// account, or with ambient credentials for the application default
// account.
type ClientFactory struct {
	project string
	iam     iam.Service
	log     *logger.Logger
}

// NewClientFactory creates a factory minting per-account clients.
func NewClientFactory(cfg *common.Config, log *logger.Logger, iamSvc iam.Service) *ClientFactory {
	return &ClientFactory{
		project: cfg.ProjectID,
		iam:     iamSvc,
		log:     log,
	}
}

// CreateClient builds a client for the configured project. For a named
// service account the client authenticates with a freshly minted
// impersonation token.
func (f *ClientFactory) CreateClient(ctx context.Context, account common.ServiceAccount) (*bq.Client, error) {
	if account.IsApplicationDefault() {
		client, err := bq.NewClient(ctx, f.project)
		if err != nil {
			return nil, common.NewError(adapterName, "CreateClient", "failed to create BigQuery client", err)
		}
		return client, nil
	}

	source, err := f.iam.TokenSource(ctx, account, iam.ScopeBigQuery)
	if err != nil {
		return nil, err
	}

	client, err := bq.NewClient(ctx, f.project, option.WithTokenSource(source))
	if err != nil {
		return nil, common.NewError(adapterName, "CreateClient", "failed to create BigQuery client for "+account.Email, err)
	}

	f.log.Debug("BigQuery client created", map[string]interface{}{"account": account.Email})
	return client, nil
}

// TableService implements Service through per-call clients from a
// ClientFactory.
type TableService struct {
	factory *ClientFactory
	log     *logger.Logger
}

var _ Service = (*TableService)(nil)

// NewTableService creates a table service on top of factory.
func NewTableService(factory *ClientFactory, log *logger.Logger) *TableService {
	return &TableService{factory: factory, log: log}
}

// TableExists reports whether the target table exists.
func (s *TableService) TableExists(ctx context.Context, account common.ServiceAccount, target Target) (exists bool, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "table_exists", time.Since(start), err) }()

	client, err := s.factory.CreateClient(ctx, account)
	if err != nil {
		return false, err
	}
	defer client.Close()

	_, err = client.DatasetInProject(target.Project, target.Dataset).Table(target.Table).Metadata(ctx)
	if err != nil {
		if isNotFound(err) {
			s.log.Debug("table not found", map[string]interface{}{"table": target.String()})
			return false, nil
		}
		return false, common.NewError(adapterName, "TableExists", "failed to look up table "+target.String(), err)
	}

	return true, nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}

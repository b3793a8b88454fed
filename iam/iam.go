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

package iam

import (
	"context"

	"golang.org/x/oauth2"

	"dataspace/gcp/common"
)

// Token scopes the adapters request.
const (
	// ScopeStorageReadWrite allows object reads and writes in GCS.
	ScopeStorageReadWrite = "https://www.googleapis.com/auth/devstorage.read_write"

	// ScopeBigQuery allows BigQuery job and data access.
	ScopeBigQuery = "https://www.googleapis.com/auth/bigquery"
)

// Service resolves service accounts and mints short-lived access tokens
// for them.
type Service interface {
	// GetServiceAccount resolves accountName within the configured
	// project. An empty accountName falls back to the configured service
	// account, or to the application default account when none is set.
	GetServiceAccount(ctx context.Context, accountName string) (common.ServiceAccount, error)

	// CreateAccessToken mints a short-lived OAuth2 access token for the
	// given service account. For the application default account the
	// token comes from the ambient credentials instead of impersonation.
	// When no scopes are given, ScopeStorageReadWrite is used.
	CreateAccessToken(ctx context.Context, account common.ServiceAccount, scopes ...string) (common.AccessToken, error)

	// TokenSource exposes the account's credentials as an
	// oauth2.TokenSource for client libraries that authenticate through
	// option.WithTokenSource. Scope defaulting matches CreateAccessToken.
	TokenSource(ctx context.Context, account common.ServiceAccount, scopes ...string) (oauth2.TokenSource, error)
}

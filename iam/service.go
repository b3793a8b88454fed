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
	"fmt"
	"time"

	admin "cloud.google.com/go/iam/admin/apiv1"
	"cloud.google.com/go/iam/admin/apiv1/adminpb"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"github.com/googleapis/gax-go/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"

	"dataspace/gcp/common"
	"dataspace/gcp/metrics"
	"dataspace/gcp/shared/logger"
)

const adapterName = "iam-gcp"

// AccountClient is the subset of the IAM admin client the service uses.
// Satisfied by *admin.IamClient.
type AccountClient interface {
	GetServiceAccount(ctx context.Context, req *adminpb.GetServiceAccountRequest, opts ...gax.CallOption) (*adminpb.ServiceAccount, error)
	Close() error
}

// CredentialsClient is the subset of the IAM credentials client the
// service uses. Satisfied by *credentials.IamCredentialsClient.
type CredentialsClient interface {
	GenerateAccessToken(ctx context.Context, req *credentialspb.GenerateAccessTokenRequest, opts ...gax.CallOption) (*credentialspb.GenerateAccessTokenResponse, error)
	Close() error
}

var (
	_ AccountClient     = (*admin.IamClient)(nil)
	_ CredentialsClient = (*credentials.IamCredentialsClient)(nil)
)

// defaultTokenSource yields the ambient-credential token source; swapped
// out in tests.
var defaultTokenSource = google.DefaultTokenSource

// IamService implements Service on the GCP IAM APIs.
type IamService struct {
	project        string
	defaultAccount string
	tokenLifetime  time.Duration
	accounts       AccountClient
	credentials    CredentialsClient
	log            *logger.Logger
}

var _ Service = (*IamService)(nil)

// NewService builds an IAM service with real clients, authenticated
// through the credentials carried by cfg, or Application Default
// Credentials when none are set.
func NewService(ctx context.Context, cfg *common.Config, log *logger.Logger) (*IamService, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	} else if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	accounts, err := admin.NewIamClient(ctx, opts...)
	if err != nil {
		return nil, common.NewError(adapterName, "New", "failed to create IAM admin client", err)
	}

	creds, err := credentials.NewIamCredentialsClient(ctx, opts...)
	if err != nil {
		accounts.Close()
		return nil, common.NewError(adapterName, "New", "failed to create IAM credentials client", err)
	}

	return NewServiceWithClients(cfg, log, accounts, creds), nil
}

// NewServiceWithClients builds an IAM service around existing clients.
func NewServiceWithClients(cfg *common.Config, log *logger.Logger, accounts AccountClient, creds CredentialsClient) *IamService {
	lifetime := cfg.TokenLifetime
	if lifetime == 0 {
		lifetime = time.Hour
	}

	return &IamService{
		project:        cfg.ProjectID,
		defaultAccount: cfg.ServiceAccountName,
		tokenLifetime:  lifetime,
		accounts:       accounts,
		credentials:    creds,
		log:            log,
	}
}

// GetServiceAccount resolves the account by its short name, e.g.
// "transfer-agent" resolves to
// "transfer-agent@<project>.iam.gserviceaccount.com".
func (s *IamService) GetServiceAccount(ctx context.Context, accountName string) (account common.ServiceAccount, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "get_service_account", time.Since(start), err) }()

	if accountName == "" {
		accountName = s.defaultAccount
	}
	if accountName == "" {
		s.log.Debug("no service account configured, using application default credentials", nil)
		return common.ApplicationDefaultAccount, nil
	}

	email := s.accountEmail(accountName)

	resp, err := s.accounts.GetServiceAccount(ctx, &adminpb.GetServiceAccountRequest{
		Name: fmt.Sprintf("projects/%s/serviceAccounts/%s", s.project, email),
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			msg := "service account not found: " + email
			s.log.ErrorWith(msg, err, nil)
			return common.ServiceAccount{}, common.NewError(adapterName, "GetServiceAccount", msg, err)
		}
		msg := "failed to resolve service account " + email
		s.log.ErrorWith(msg, err, nil)
		return common.ServiceAccount{}, common.NewError(adapterName, "GetServiceAccount", msg, err)
	}

	return common.ServiceAccount{
		Email:       resp.GetEmail(),
		Name:        accountName,
		Description: resp.GetDescription(),
	}, nil
}

// CreateAccessToken mints an impersonation token for account, or draws on
// the ambient credentials for the application default account.
func (s *IamService) CreateAccessToken(ctx context.Context, account common.ServiceAccount, scopes ...string) (token common.AccessToken, err error) {
	start := time.Now()
	defer func() { metrics.RecordOp(adapterName, "create_access_token", time.Since(start), err) }()

	if len(scopes) == 0 {
		scopes = []string{ScopeStorageReadWrite}
	}

	if account.IsApplicationDefault() {
		return s.defaultAccessToken(ctx, scopes)
	}

	resp, err := s.credentials.GenerateAccessToken(ctx, &credentialspb.GenerateAccessTokenRequest{
		Name:     "projects/-/serviceAccounts/" + account.Email,
		Scope:    scopes,
		Lifetime: durationpb.New(s.tokenLifetime),
	})
	if err != nil {
		msg := "failed to generate access token for " + account.Email
		s.log.ErrorWith(msg, err, nil)
		return common.AccessToken{}, common.NewError(adapterName, "CreateAccessToken", msg, err)
	}

	return common.AccessToken{
		Token:     resp.GetAccessToken(),
		ExpiresAt: resp.GetExpireTime().AsTime(),
	}, nil
}

// defaultAccessToken draws a token from the application default
// credentials instead of impersonating an account.
func (s *IamService) defaultAccessToken(ctx context.Context, scopes []string) (common.AccessToken, error) {
	ts, err := defaultTokenSource(ctx, scopes...)
	if err != nil {
		msg := "failed to resolve application default credentials"
		s.log.ErrorWith(msg, err, nil)
		return common.AccessToken{}, common.NewError(adapterName, "CreateAccessToken", msg, err)
	}

	tok, err := ts.Token()
	if err != nil {
		msg := "failed to mint application default token"
		s.log.ErrorWith(msg, err, nil)
		return common.AccessToken{}, common.NewError(adapterName, "CreateAccessToken", msg, err)
	}

	return common.AccessToken{Token: tok.AccessToken, ExpiresAt: tok.Expiry}, nil
}

// TokenSource exposes account credentials as an oauth2.TokenSource. The
// application default account yields the ambient source directly; any
// other account yields a static source backed by a freshly minted
// impersonation token.
func (s *IamService) TokenSource(ctx context.Context, account common.ServiceAccount, scopes ...string) (oauth2.TokenSource, error) {
	if len(scopes) == 0 {
		scopes = []string{ScopeStorageReadWrite}
	}

	if account.IsApplicationDefault() {
		ts, err := defaultTokenSource(ctx, scopes...)
		if err != nil {
			msg := "failed to resolve application default credentials"
			s.log.ErrorWith(msg, err, nil)
			return nil, common.NewError(adapterName, "TokenSource", msg, err)
		}
		return ts, nil
	}

	token, err := s.CreateAccessToken(ctx, account, scopes...)
	if err != nil {
		return nil, err
	}

	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token.Token,
		Expiry:      token.ExpiresAt,
	}), nil
}

// Close releases the underlying clients.
func (s *IamService) Close() error {
	err := s.accounts.Close()
	if cerr := s.credentials.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *IamService) accountEmail(accountName string) string {
	return fmt.Sprintf("%s@%s.iam.gserviceaccount.com", accountName, s.project)
}

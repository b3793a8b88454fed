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
	"testing"
	"time"

	"cloud.google.com/go/iam/admin/apiv1/adminpb"
	"cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"github.com/googleapis/gax-go/v2"
	"golang.org/x/oauth2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"dataspace/gcp/common"
	"dataspace/gcp/shared/logger"
)

type fakeAccountClient struct {
	req  *adminpb.GetServiceAccountRequest
	resp *adminpb.ServiceAccount
	err  error
}

func (f *fakeAccountClient) GetServiceAccount(ctx context.Context, req *adminpb.GetServiceAccountRequest, opts ...gax.CallOption) (*adminpb.ServiceAccount, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeAccountClient) Close() error { return nil }

type fakeCredentialsClient struct {
	req  *credentialspb.GenerateAccessTokenRequest
	resp *credentialspb.GenerateAccessTokenResponse
	err  error
}

func (f *fakeCredentialsClient) GenerateAccessToken(ctx context.Context, req *credentialspb.GenerateAccessTokenRequest, opts ...gax.CallOption) (*credentialspb.GenerateAccessTokenResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeCredentialsClient) Close() error { return nil }

func newTestService(accounts AccountClient, creds CredentialsClient) *IamService {
	cfg := &common.Config{ProjectID: "test-project", Region: "europe-west3"}
	return NewServiceWithClients(cfg, logger.New("iam-test"), accounts, creds)
}

func TestGetServiceAccount(t *testing.T) {
	fake := &fakeAccountClient{
		resp: &adminpb.ServiceAccount{
			Email:       "transfer-agent@test-project.iam.gserviceaccount.com",
			Description: "dataspace transfer agent",
		},
	}
	s := newTestService(fake, &fakeCredentialsClient{})

	account, err := s.GetServiceAccount(context.Background(), "transfer-agent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantName := "projects/test-project/serviceAccounts/transfer-agent@test-project.iam.gserviceaccount.com"
	if fake.req.GetName() != wantName {
		t.Errorf("resolved %q, want %q", fake.req.GetName(), wantName)
	}

	if account.Email != "transfer-agent@test-project.iam.gserviceaccount.com" {
		t.Errorf("email = %q", account.Email)
	}
	if account.Name != "transfer-agent" {
		t.Errorf("name = %q", account.Name)
	}
	if account.Description != "dataspace transfer agent" {
		t.Errorf("description = %q", account.Description)
	}
}

func TestGetServiceAccountEmptyNameSelectsDefault(t *testing.T) {
	fake := &fakeAccountClient{}
	s := newTestService(fake, &fakeCredentialsClient{})

	account, err := s.GetServiceAccount(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !account.IsApplicationDefault() {
		t.Errorf("expected application default account, got %+v", account)
	}
	if fake.req != nil {
		t.Error("default account must not hit the IAM API")
	}
}

func TestGetServiceAccountConfiguredFallback(t *testing.T) {
	fake := &fakeAccountClient{
		resp: &adminpb.ServiceAccount{Email: "configured@test-project.iam.gserviceaccount.com"},
	}
	cfg := &common.Config{ProjectID: "test-project", Region: "europe-west3", ServiceAccountName: "configured"}
	s := NewServiceWithClients(cfg, logger.New("iam-test"), fake, &fakeCredentialsClient{})

	account, err := s.GetServiceAccount(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Name != "configured" {
		t.Errorf("expected fallback to the configured account, got %+v", account)
	}
}

func TestGetServiceAccountNotFound(t *testing.T) {
	fake := &fakeAccountClient{err: status.Error(codes.NotFound, "missing")}
	s := newTestService(fake, &fakeCredentialsClient{})

	if _, err := s.GetServiceAccount(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for missing service account")
	}
}

func TestCreateAccessToken(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	fake := &fakeCredentialsClient{
		resp: &credentialspb.GenerateAccessTokenResponse{
			AccessToken: "ya29.token",
			ExpireTime:  timestamppb.New(expires),
		},
	}
	s := newTestService(&fakeAccountClient{}, fake)

	account := common.ServiceAccount{
		Email: "transfer-agent@test-project.iam.gserviceaccount.com",
		Name:  "transfer-agent",
	}

	token, err := s.CreateAccessToken(context.Background(), account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantName := "projects/-/serviceAccounts/transfer-agent@test-project.iam.gserviceaccount.com"
	if fake.req.GetName() != wantName {
		t.Errorf("impersonated %q, want %q", fake.req.GetName(), wantName)
	}
	if got := fake.req.GetScope(); len(got) != 1 || got[0] != ScopeStorageReadWrite {
		t.Errorf("scopes = %v, want default storage scope", got)
	}
	if fake.req.GetLifetime().AsDuration() != time.Hour {
		t.Errorf("lifetime = %v, want 1h", fake.req.GetLifetime().AsDuration())
	}

	if token.Token != "ya29.token" {
		t.Errorf("token = %q", token.Token)
	}
	if !token.ExpiresAt.Equal(expires) {
		t.Errorf("expiry = %v, want %v", token.ExpiresAt, expires)
	}
}

func TestCreateAccessTokenCustomScopes(t *testing.T) {
	fake := &fakeCredentialsClient{
		resp: &credentialspb.GenerateAccessTokenResponse{AccessToken: "t"},
	}
	s := newTestService(&fakeAccountClient{}, fake)

	account := common.ServiceAccount{Email: "bq@test-project.iam.gserviceaccount.com"}
	if _, err := s.CreateAccessToken(context.Background(), account, ScopeBigQuery); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fake.req.GetScope(); len(got) != 1 || got[0] != ScopeBigQuery {
		t.Errorf("scopes = %v, want BigQuery scope", got)
	}
}

func TestCreateAccessTokenApplicationDefault(t *testing.T) {
	restore := defaultTokenSource
	defer func() { defaultTokenSource = restore }()

	expires := time.Now().Add(30 * time.Minute)
	defaultTokenSource = func(ctx context.Context, scopes ...string) (oauth2.TokenSource, error) {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ambient", Expiry: expires}), nil
	}

	creds := &fakeCredentialsClient{}
	s := newTestService(&fakeAccountClient{}, creds)

	token, err := s.CreateAccessToken(context.Background(), common.ApplicationDefaultAccount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token.Token != "ambient" {
		t.Errorf("token = %q", token.Token)
	}
	if creds.req != nil {
		t.Error("application default account must not impersonate")
	}
}

func TestTokenSourceImpersonatedAccount(t *testing.T) {
	fake := &fakeCredentialsClient{
		resp: &credentialspb.GenerateAccessTokenResponse{
			AccessToken: "ya29.minted",
			ExpireTime:  timestamppb.New(time.Now().Add(time.Hour)),
		},
	}
	s := newTestService(&fakeAccountClient{}, fake)

	account := common.ServiceAccount{
		Email: "transfer-agent@test-project.iam.gserviceaccount.com",
		Name:  "transfer-agent",
	}

	source, err := s.TokenSource(context.Background(), account, ScopeBigQuery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tok, err := source.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessToken != "ya29.minted" {
		t.Errorf("token = %q", tok.AccessToken)
	}
	if got := fake.req.GetScope(); len(got) != 1 || got[0] != ScopeBigQuery {
		t.Errorf("scopes = %v, want bigquery scope", got)
	}
}

func TestTokenSourceApplicationDefault(t *testing.T) {
	restore := defaultTokenSource
	defer func() { defaultTokenSource = restore }()

	defaultTokenSource = func(ctx context.Context, scopes ...string) (oauth2.TokenSource, error) {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ambient"}), nil
	}

	creds := &fakeCredentialsClient{}
	s := newTestService(&fakeAccountClient{}, creds)

	source, err := s.TokenSource(context.Background(), common.ApplicationDefaultAccount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tok, err := source.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessToken != "ambient" {
		t.Errorf("token = %q", tok.AccessToken)
	}
	if creds.req != nil {
		t.Error("application default account must not impersonate")
	}
}

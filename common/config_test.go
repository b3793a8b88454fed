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

package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid minimal config",
			config:  Config{ProjectID: "my-project", Region: "europe-west3"},
			wantErr: false,
		},
		{
			name:    "missing project",
			config:  Config{Region: "europe-west3"},
			wantErr: true,
		},
		{
			name:    "missing region",
			config:  Config{ProjectID: "my-project"},
			wantErr: true,
		},
		{
			name: "conflicting credentials",
			config: Config{
				ProjectID:       "my-project",
				Region:          "europe-west3",
				CredentialsFile: "/tmp/key.json",
				CredentialsJSON: `{"type":"service_account"}`,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{ProjectID: "p", Region: "r"}
	cfg.ApplyDefaults()

	if cfg.TokenLifetime != time.Hour {
		t.Errorf("expected default token lifetime of 1h, got %v", cfg.TokenLifetime)
	}

	cfg = Config{ProjectID: "p", Region: "r", TokenLifetime: 30 * time.Minute}
	cfg.ApplyDefaults()

	if cfg.TokenLifetime != 30*time.Minute {
		t.Errorf("expected token lifetime to be preserved, got %v", cfg.TokenLifetime)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("TEST_GCP_PROJECT", "env-project")

	content := `
project_id: ${TEST_GCP_PROJECT}
region: ${TEST_GCP_REGION:-europe-west3}
service_account_name: transfer-sa
`
	path := filepath.Join(t.TempDir(), "gcp.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() error: %v", err)
	}

	if cfg.ProjectID != "env-project" {
		t.Errorf("expected project from env expansion, got %s", cfg.ProjectID)
	}

	if cfg.Region != "europe-west3" {
		t.Errorf("expected region default, got %s", cfg.Region)
	}

	if cfg.ServiceAccountName != "transfer-sa" {
		t.Errorf("unexpected service account name: %s", cfg.ServiceAccountName)
	}

	if cfg.TokenLifetime != time.Hour {
		t.Errorf("expected default token lifetime, got %v", cfg.TokenLifetime)
	}
}

func TestLoadConfigFileMissingRequired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gcp.yaml")
	if err := os.WriteFile(path, []byte("region: eu\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := LoadConfigFile(path); err == nil {
		t.Error("expected validation error for missing project_id")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("EXPAND_TEST_VAR", "value")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"braced", "${EXPAND_TEST_VAR}", "value"},
		{"bare", "$EXPAND_TEST_VAR", "value"},
		{"default used", "${UNSET_VAR_XYZ:-fallback}", "fallback"},
		{"default unused", "${EXPAND_TEST_VAR:-fallback}", "value"},
		{"undefined", "${UNSET_VAR_XYZ}", ""},
		{"no reference", "plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnvVars(tt.input); got != tt.expected {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestServiceAccountIsApplicationDefault(t *testing.T) {
	if !ApplicationDefaultAccount.IsApplicationDefault() {
		t.Error("sentinel account should report as application default")
	}

	sa := ServiceAccount{Email: "sa@p.iam.gserviceaccount.com", Name: "sa"}
	if sa.IsApplicationDefault() {
		t.Error("named account should not report as application default")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	if (AccessToken{}).Expired() {
		t.Error("zero expiry should never be expired")
	}

	past := AccessToken{Token: "t", ExpiresAt: time.Now().Add(-time.Minute)}
	if !past.Expired() {
		t.Error("token expiring in the past should be expired")
	}

	future := AccessToken{Token: "t", ExpiresAt: time.Now().Add(time.Minute)}
	if future.Expired() {
		t.Error("token expiring in the future should not be expired")
	}
}

func TestAdapterError(t *testing.T) {
	cause := os.ErrNotExist
	err := NewError("vault", "StoreSecret", "secret already exists", cause)

	want := "vault.StoreSecret: secret already exists (cause: file does not exist)"
	if err.Error() != want {
		t.Errorf("unexpected error string: %s", err.Error())
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	bare := NewError("vault", "DeleteSecret", "secret not found", nil)
	if bare.Error() != "vault.DeleteSecret: secret not found" {
		t.Errorf("unexpected error string: %s", bare.Error())
	}
}

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
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the GCP settings shared by all extension adapters.
type Config struct {
	// ProjectID is the GCP project the adapters operate in. Required.
	ProjectID string `yaml:"project_id"`

	// Region is the replica location for secrets and the default location
	// for provisioned buckets. Required.
	Region string `yaml:"region"`

	// ServiceAccountName selects the service account used to access
	// provisioned resources. Empty means Application Default Credentials.
	ServiceAccountName string `yaml:"service_account_name,omitempty"`

	// CredentialsFile is the path to a service account JSON key file.
	CredentialsFile string `yaml:"credentials_file,omitempty"`

	// CredentialsJSON holds inline service account JSON credentials.
	CredentialsJSON string `yaml:"credentials_json,omitempty"`

	// TokenLifetime bounds minted access tokens. Defaults to one hour.
	TokenLifetime time.Duration `yaml:"token_lifetime,omitempty"`

	// DatabaseURL enables PostgreSQL persistence for provisioned resources.
	DatabaseURL string `yaml:"database_url,omitempty"`
}

// Validate fails fast on missing required fields.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("config: project_id is required")
	}
	if c.Region == "" {
		return fmt.Errorf("config: region is required")
	}
	if c.CredentialsFile != "" && c.CredentialsJSON != "" {
		return fmt.Errorf("config: credentials_file and credentials_json are mutually exclusive")
	}
	return nil
}

// ApplyDefaults fills unset optional fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.TokenLifetime == 0 {
		c.TokenLifetime = time.Hour
	}
}

// LoadConfigFile reads a YAML configuration file, expands ${ENV} references,
// validates the result, and applies defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// LoadConfigFromEnv builds a Config from GCP_* environment variables.
// Useful when no config file is mounted.
func LoadConfigFromEnv() (*Config, error) {
	cfg := Config{
		ProjectID:          os.Getenv("GCP_PROJECT_ID"),
		Region:             os.Getenv("GCP_REGION"),
		ServiceAccountName: os.Getenv("GCP_SERVICE_ACCOUNT_NAME"),
		CredentialsFile:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// envVarRegex matches ${VAR_NAME} or $VAR_NAME patterns
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars expands environment variable references in the string.
// Supports ${VAR_NAME}, $VAR_NAME, and ${VAR_NAME:-default} syntax.
// Undefined variables expand to the empty string.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		// Handle default values: ${VAR_NAME:-default}
		defaultVal := ""
		if idx := strings.Index(varName, ":-"); idx != -1 {
			defaultVal = varName[idx+2:]
			varName = varName[:idx]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultVal
	})
}

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

package launcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dataspace/gcp/extension"
	"dataspace/gcp/shared/logger"
)

type stubExtension struct {
	name    string
	healthy bool
}

func (s *stubExtension) Name() string { return s.name }

func (s *stubExtension) Initialize(ctx context.Context, rt *extension.Runtime) error { return nil }

func (s *stubExtension) Shutdown(ctx context.Context) error { return nil }

func (s *stubExtension) HealthCheck(ctx context.Context) (*extension.HealthStatus, error) {
	return &extension.HealthStatus{Healthy: s.healthy, Timestamp: time.Now()}, nil
}

func newTestHandler(t *testing.T, exts ...extension.Extension) http.Handler {
	t.Helper()
	log := logger.New("launcher-test")
	registry := extension.NewRegistry(log)
	for _, ext := range exts {
		if err := registry.Register(ext); err != nil {
			t.Fatalf("failed to register extension: %v", err)
		}
	}
	return newHandler(registry, log)
}

func TestHealthEndpointHealthy(t *testing.T) {
	handler := newTestHandler(t,
		&stubExtension{name: "alpha", healthy: true},
		&stubExtension{name: "beta", healthy: true},
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Status     string                             `json:"status"`
		Service    string                             `json:"service"`
		Extensions map[string]*extension.HealthStatus `json:"extensions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
	if body.Service != serviceName {
		t.Errorf("service = %q, want %q", body.Service, serviceName)
	}
	if len(body.Extensions) != 2 {
		t.Errorf("extensions = %d, want 2", len(body.Extensions))
	}
}

func TestHealthEndpointDegraded(t *testing.T) {
	handler := newTestHandler(t,
		&stubExtension{name: "alpha", healthy: true},
		&stubExtension{name: "beta", healthy: false},
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != "degraded" {
		t.Errorf("status = %q, want degraded", body.Status)
	}
}

func TestPrometheusEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/prometheus", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected metric exposition output")
	}
}

func TestUnknownRouteReturnsNotFound(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "project_id: demo-project\nregion: europe-west3\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectID != "demo-project" {
		t.Errorf("project id = %q", cfg.ProjectID)
	}
	if cfg.Region != "europe-west3" {
		t.Errorf("region = %q", cfg.Region)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("LAUNCHER_TEST_PORT", "9090")

	if got := getEnv("LAUNCHER_TEST_PORT", "8080"); got != "9090" {
		t.Errorf("got %q, want 9090", got)
	}
	if got := getEnv("LAUNCHER_TEST_MISSING", "8080"); got != "8080" {
		t.Errorf("got %q, want fallback 8080", got)
	}
}

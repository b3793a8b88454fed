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
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"dataspace/gcp/bigquery"
	"dataspace/gcp/common"
	"dataspace/gcp/extension"
	"dataspace/gcp/iam"
	"dataspace/gcp/provision"
	"dataspace/gcp/shared/logger"
	"dataspace/gcp/storage"
	"dataspace/gcp/vault"
)

const serviceName = "dataspace-gcp-runtime"

// shutdownGrace bounds how long in-flight requests and extension
// teardown may take once a termination signal arrives.
const shutdownGrace = 15 * time.Second

// Run is the entry point for the GCP runtime.
//
// It loads configuration from the file named by CONFIG_FILE (or from
// environment variables when unset), registers the GCP extensions,
// initializes them in dependency order, and serves the operational HTTP
// endpoints until SIGINT or SIGTERM. The function blocks until the
// server has drained and every extension has shut down.
//
// Environment variables used:
//   - CONFIG_FILE: path to a YAML configuration file (optional)
//   - PORT: HTTP server port (default: 8080)
//   - GCP_PROJECT_ID, GCP_REGION, ...: see common.LoadConfigFromEnv
func Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return RunWithConfig(cfg)
}

// RunWithConfig runs the runtime against an already-loaded configuration.
func RunWithConfig(cfg *common.Config) error {
	log := logger.New(serviceName)

	registry := extension.NewRegistry(log)
	runtime := extension.NewRuntime(cfg, log)

	// Registration order is initialization order: the IAM extension must
	// come first because storage, bigquery and provision resolve service
	// accounts and access tokens through it.
	extensions := []extension.Extension{
		iam.NewExtension(),
		vault.NewExtension(),
		storage.NewExtension(),
		bigquery.NewExtension(),
		provision.NewExtension(),
	}
	for _, ext := range extensions {
		if err := registry.Register(ext); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := registry.InitializeAll(ctx, runtime); err != nil {
		return err
	}

	port := getEnv("PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: newHandler(registry, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("runtime listening", map[string]interface{}{
			"port":       port,
			"extensions": registry.List(),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		registry.ShutdownAll(shutdownCtx)
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorWith("http server shutdown failed", err, nil)
	}
	registry.ShutdownAll(shutdownCtx)

	log.Info("runtime stopped", nil)
	return nil
}

func loadConfig() (*common.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return common.LoadConfigFile(path)
	}
	return common.LoadConfigFromEnv()
}

// newHandler builds the operational HTTP surface: a health endpoint
// backed by the extension registry and the Prometheus scrape endpoint.
func newHandler(registry *extension.Registry, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Configure for production
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	r.HandleFunc("/health", healthHandler(registry, log)).Methods("GET")
	r.Handle("/prometheus", promhttp.Handler()).Methods("GET")

	return c.Handler(r)
}

func healthHandler(registry *extension.Registry, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := registry.HealthCheck(r.Context())

		healthy := true
		for _, status := range statuses {
			if !status.Healthy {
				healthy = false
				break
			}
		}

		body := map[string]interface{}{
			"status":     "healthy",
			"service":    serviceName,
			"timestamp":  time.Now().UTC(),
			"extensions": statuses,
		}
		code := http.StatusOK
		if !healthy {
			body["status"] = "degraded"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.ErrorWith("failed to encode health response", err, nil)
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

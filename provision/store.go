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
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"dataspace/gcp/shared/logger"
)

// Store persists provisioned resources in PostgreSQL so deprovisioning
// works across restarts and replicas.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// NewStore connects to PostgreSQL and prepares the schema. The connection
// is retried with backoff to ride out container startup races.
func NewStore(dbURL string, log *logger.Logger) (*Store, error) {
	const maxRetries = 5

	var db *sql.DB
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = sql.Open("postgres", dbURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt*2) * time.Second
			log.Warn("database connection failed, retrying", map[string]interface{}{
				"attempt": attempt,
				"backoff": backoff.String(),
				"error":   err.Error(),
			})
			time.Sleep(backoff)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	store := NewStoreWithDB(db, log)
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Info("provisioned resource store initialized", nil)
	return store, nil
}

// NewStoreWithDB wraps an existing database handle without touching the
// schema.
func NewStoreWithDB(db *sql.DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS provisioned_resources (
		id VARCHAR(255) PRIMARY KEY,
		kind VARCHAR(50) NOT NULL,
		name VARCHAR(255) NOT NULL,
		transfer_process_id VARCHAR(255) NOT NULL,
		properties JSONB NOT NULL DEFAULT '{}'::jsonb,
		has_token BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_provisioned_resources_process ON provisioned_resources(transfer_process_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Save upserts a provisioned resource.
func (s *Store) Save(ctx context.Context, res *ProvisionedResource) error {
	propertiesJSON, err := json.Marshal(res.Properties)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}

	query := `
		INSERT INTO provisioned_resources (id, kind, name, transfer_process_id, properties, has_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			kind = EXCLUDED.kind,
			name = EXCLUDED.name,
			transfer_process_id = EXCLUDED.transfer_process_id,
			properties = EXCLUDED.properties,
			has_token = EXCLUDED.has_token
	`

	_, err = s.db.ExecContext(ctx, query,
		res.ID,
		string(res.Kind),
		res.Name,
		res.TransferProcessID,
		propertiesJSON,
		res.HasToken,
	)
	if err != nil {
		return fmt.Errorf("failed to save provisioned resource: %w", err)
	}

	return nil
}

// Get retrieves a provisioned resource by id.
func (s *Store) Get(ctx context.Context, id string) (*ProvisionedResource, error) {
	query := `
		SELECT kind, name, transfer_process_id, properties, has_token
		FROM provisioned_resources
		WHERE id = $1
	`

	var kind, name, transferProcessID string
	var propertiesJSON []byte
	var hasToken bool

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&kind,
		&name,
		&transferProcessID,
		&propertiesJSON,
		&hasToken,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("provisioned resource '%s' not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get provisioned resource: %w", err)
	}

	var properties map[string]string
	if err := json.Unmarshal(propertiesJSON, &properties); err != nil {
		return nil, fmt.Errorf("failed to unmarshal properties: %w", err)
	}

	return &ProvisionedResource{
		ID:                id,
		Kind:              ResourceKind(kind),
		Name:              name,
		TransferProcessID: transferProcessID,
		Properties:        properties,
		HasToken:          hasToken,
	}, nil
}

// List returns all provisioned resources, newest first.
func (s *Store) List(ctx context.Context) ([]*ProvisionedResource, error) {
	query := `
		SELECT id, kind, name, transfer_process_id, properties, has_token
		FROM provisioned_resources
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list provisioned resources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var resources []*ProvisionedResource
	for rows.Next() {
		var res ProvisionedResource
		var kind string
		var propertiesJSON []byte

		if err := rows.Scan(&res.ID, &kind, &res.Name, &res.TransferProcessID, &propertiesJSON, &res.HasToken); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		res.Kind = ResourceKind(kind)
		if err := json.Unmarshal(propertiesJSON, &res.Properties); err != nil {
			return nil, fmt.Errorf("failed to unmarshal properties: %w", err)
		}

		resources = append(resources, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return resources, nil
}

// Delete removes a provisioned resource record.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM provisioned_resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete provisioned resource: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("provisioned resource '%s' not found", id)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

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

package vault

import (
	"context"
	"errors"
)

// Vault is the secret-storage abstraction the host framework consumes.
//
// ResolveSecret returns the empty string without an error when the secret
// does not exist; the write and delete operations return descriptive
// failures instead. Implementations normalize the key before forming the
// backend identifier.
type Vault interface {
	ResolveSecret(ctx context.Context, key string) (string, error)
	StoreSecret(ctx context.Context, key, value string) error
	DeleteSecret(ctx context.Context, key string) error
}

// ErrNotFound reports that the referenced secret or secret version does
// not exist. Returned (wrapped) by StoreSecret and DeleteSecret; the read
// path maps it to an empty result instead.
var ErrNotFound = errors.New("secret not found or has no version")

// ErrAlreadyExists reports a store attempt for a key that already holds a
// value. The store contract never overwrites an existing secret.
var ErrAlreadyExists = errors.New("secret already exists")

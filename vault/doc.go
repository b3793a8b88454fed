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

/*
Package vault implements the secret-storage abstraction on top of GCP
Secret Manager.

# Key normalization

Secret Manager secret ids are limited to 255 characters drawn from
[A-Za-z0-9_-]. Callers hand the vault arbitrary keys, so every operation
first passes the key through NormalizeKey. Legal keys pass through
unchanged; rewritten keys carry an 8-hex-digit FNV-1a fingerprint of the
original key so distinct inputs stay distinguishable after the lossy
rewrite. Rewrites are logged with the original and fixed key.

Normalization is not idempotent for rewritten keys: normalize each
original key exactly once.

# Failure classification

The vault maps backend errors to three kinds:

  - not-found: reads return an empty result, writes and deletes return a
    failure wrapping ErrNotFound
  - already-exists: StoreSecret never overwrites; it returns a failure
    wrapping ErrAlreadyExists
  - runtime error: anything else is wrapped with the backend message and
    logged at error severity

# Example

	v, err := vault.NewSecretManagerVault(ctx, cfg, logger.New("vault"))
	if err != nil {
	    return err
	}
	defer v.Close()

	if err := v.StoreSecret(ctx, "transfer/proc-1#token", "s3cr3t"); err != nil {
	    return err
	}
*/
package vault

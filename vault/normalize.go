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
	"fmt"
	"hash/fnv"
)

const (
	// maxKeyLength is the maximum Secret Manager secret id length.
	maxKeyLength = 255
	// fingerprintLength is the width of the hex fingerprint appended to
	// rewritten keys. A 32-bit hash renders as 8 hex digits.
	fingerprintLength = 8
)

// NormalizeKey rewrites an arbitrary key into one accepted by Secret
// Manager: at most 255 characters drawn from uppercase and lowercase
// letters, digits, hyphen, and underscore.
//
// Keys already satisfying the constraints pass through unchanged. When a
// rewrite happens, every illegal character is replaced with '-', the key is
// truncated so that a fingerprint still fits within the length limit, and
// '_' plus an 8-hex-digit FNV-1a fingerprint of the original key is
// appended so that two distinct inputs are unlikely to collide after the
// lossy rewrite. The returned flag reports whether the key was rewritten.
//
// The function is total and deterministic. The fingerprint is computed
// over the original key, before any rewriting, so equal inputs always map
// to equal outputs.
func NormalizeKey(key string) (string, bool) {
	modified := false
	buf := make([]byte, 0, len(key))

	for _, c := range key {
		if isLegalKeyChar(c) {
			buf = append(buf, byte(c))
		} else {
			buf = append(buf, '-')
			modified = true
		}

		// Keep room for '_' plus the fingerprint once the key is known to
		// need one; an untouched key only has to respect the hard limit.
		if len(buf) > maxKeyLength ||
			(modified && len(buf) > maxKeyLength-fingerprintLength-1) {
			buf = buf[:maxKeyLength-fingerprintLength-1]
			modified = true
			break
		}
	}

	if !modified {
		return key, false
	}

	return fmt.Sprintf("%s_%08X", buf, fingerprint(key)), true
}

// fingerprint computes the 32-bit FNV-1a hash of the original key.
// Fingerprints only need stable in-process collision avoidance, so a
// cryptographic hash is not required.
func fingerprint(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

func isLegalKeyChar(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_'
}

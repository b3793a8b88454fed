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
	"regexp"
	"strings"
	"testing"
)

var normalizedKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+_[0-9A-F]{8}$`)

func TestNormalizeKeyIdentity(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"simple", "valid_key-123"},
		{"empty", ""},
		{"single char", "a"},
		{"digits only", "0123456789"},
		{"hyphens and underscores", "a-b_c-d_e"},
		{"max length", strings.Repeat("k", 255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, modified := NormalizeKey(tt.key)

			if modified {
				t.Errorf("legal key %q reported as modified", tt.key)
			}

			if got != tt.key {
				t.Errorf("legal key mutated: got %q, want %q", got, tt.key)
			}
		})
	}
}

func TestNormalizeKeySubstitution(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		prefix string
	}{
		{"slash and hash", "my/secret#1", "my-secret-1"},
		{"dots", "region.europe.key", "region-europe-key"},
		{"spaces", "my secret", "my-secret"},
		{"colon path", "edc:asset:1", "edc-asset-1"},
		{"non-ascii letter", "café", "caf-"},
		{"only invalid", "###", "---"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, modified := NormalizeKey(tt.key)

			if !modified {
				t.Fatalf("key %q with illegal characters not reported as modified", tt.key)
			}

			want := fmt.Sprintf("%s_%08X", tt.prefix, fingerprint(tt.key))
			if got != want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.key, got, want)
			}

			if !normalizedKeyPattern.MatchString(got) {
				t.Errorf("output %q does not match the normalized key pattern", got)
			}

			if len(got) > maxKeyLength {
				t.Errorf("output length %d exceeds %d", len(got), maxKeyLength)
			}
		})
	}
}

func TestNormalizeKeyTruncation(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"over-length legal", strings.Repeat("a", 300)},
		{"one past the limit", strings.Repeat("a", 256)},
		{"over-length with illegal chars", strings.Repeat("a/", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, modified := NormalizeKey(tt.key)

			if !modified {
				t.Fatal("over-length key not reported as modified")
			}

			if len(got) != maxKeyLength {
				t.Errorf("expected exactly %d characters, got %d", maxKeyLength, len(got))
			}

			wantSuffix := fmt.Sprintf("_%08X", fingerprint(tt.key))
			if !strings.HasSuffix(got, wantSuffix) {
				t.Errorf("output %q missing fingerprint suffix %q", got[230:], wantSuffix)
			}
		})
	}
}

func TestNormalizeKeyTruncationKeepsPrefix(t *testing.T) {
	key := strings.Repeat("x", 300)
	got, _ := NormalizeKey(key)

	wantPrefix := strings.Repeat("x", maxKeyLength-fingerprintLength-1)
	if !strings.HasPrefix(got, wantPrefix+"_") {
		t.Errorf("expected first %d input characters followed by '_'", maxKeyLength-fingerprintLength-1)
	}
}

func TestNormalizeKeyDeterministic(t *testing.T) {
	keys := []string{"my/secret#1", strings.Repeat("q", 400), "plain-key"}

	for _, key := range keys {
		first, firstMod := NormalizeKey(key)
		second, secondMod := NormalizeKey(key)

		if first != second || firstMod != secondMod {
			t.Errorf("NormalizeKey(%q) not deterministic: %q vs %q", key, first, second)
		}
	}
}

func TestNormalizeKeyDistinctInputsDistinctOutputs(t *testing.T) {
	// Two over-length keys sharing the first 246 characters must still be
	// told apart by the fingerprint.
	base := strings.Repeat("s", 250)
	a, _ := NormalizeKey(base + "AAAAAAAAAA")
	b, _ := NormalizeKey(base + "BBBBBBBBBB")

	if a == b {
		t.Errorf("distinct over-length keys collided: %q", a)
	}
}

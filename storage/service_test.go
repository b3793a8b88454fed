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

package storage

import (
	"context"
	"testing"

	"dataspace/gcp/common"
	"dataspace/gcp/shared/logger"
)

func newDisconnectedService() *StorageService {
	cfg := &common.Config{ProjectID: "test-project", Region: "europe-west3"}
	return NewServiceWithClient(cfg, logger.New("storage-test"), nil)
}

func TestOperationsWithoutClient(t *testing.T) {
	s := newDisconnectedService()
	ctx := context.Background()
	bucket := Bucket{Name: "transfer-123", Location: "EUROPE-WEST3", StorageClass: "STANDARD"}
	account := common.ServiceAccount{Email: "sa@test-project.iam.gserviceaccount.com"}

	if _, err := s.GetOrCreateBucket(ctx, bucket); err == nil {
		t.Error("GetOrCreateBucket must fail without a client")
	}
	if err := s.AddRoleBinding(ctx, &bucket, account, RoleObjectCreator); err == nil {
		t.Error("AddRoleBinding must fail without a client")
	}
	if err := s.AddProviderPermissions(ctx, &bucket, account); err == nil {
		t.Error("AddProviderPermissions must fail without a client")
	}
	if _, err := s.IsEmpty(ctx, bucket.Name); err == nil {
		t.Error("IsEmpty must fail without a client")
	}
	if err := s.DeleteBucket(ctx, bucket.Name); err == nil {
		t.Error("DeleteBucket must fail without a client")
	}
}

func TestLocationsMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"EUROPE-WEST3", "europe-west3", true},
		{"EU", "EU", true},
		{"EUROPE-WEST3", "US-CENTRAL1", false},
		{"", "", true},
	}

	for _, tt := range tests {
		if got := locationsMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("locationsMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMemberServiceAccount(t *testing.T) {
	account := common.ServiceAccount{Email: "sa@test-project.iam.gserviceaccount.com"}

	want := "serviceAccount:sa@test-project.iam.gserviceaccount.com"
	if got := memberServiceAccount(account); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCloseWithoutClient(t *testing.T) {
	if err := newDisconnectedService().Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

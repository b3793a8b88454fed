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

import "time"

// ServiceAccount identifies a GCP service account used to access
// provisioned resources.
type ServiceAccount struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ApplicationDefaultAccount is the sentinel service account selecting
// Application Default Credentials instead of a named account.
var ApplicationDefaultAccount = ServiceAccount{
	Email: "adc",
	Name:  "adc",
}

// IsApplicationDefault reports whether the account is the ADC sentinel.
func (s ServiceAccount) IsApplicationDefault() bool {
	return s.Name == ApplicationDefaultAccount.Name && s.Email == ApplicationDefaultAccount.Email
}

// AccessToken is a short-lived OAuth2 access token minted for a service
// account, handed to the data plane as the secret of a provisioned resource.
type AccessToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token expiry has passed.
func (t AccessToken) Expired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

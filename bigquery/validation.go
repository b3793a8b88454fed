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

package bigquery

import "strings"

// Violation names a data-address field that failed validation.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateSourceAddress checks a source data address. Sources are read via
// a query, so the query property is required.
func ValidateSourceAddress(addr DataAddress) []Violation {
	var violations []Violation

	if isBlank(addr.Query()) {
		violations = append(violations, required(FieldQuery))
	}

	return violations
}

// ValidateSinkAddress checks a sink data address. Sinks are written as
// table loads, so dataset and table are required.
func ValidateSinkAddress(addr DataAddress) []Violation {
	var violations []Violation

	if isBlank(addr.Dataset()) {
		violations = append(violations, required(FieldDataset))
	}
	if isBlank(addr.Table()) {
		violations = append(violations, required(FieldTable))
	}

	return violations
}

func required(field string) Violation {
	return Violation{Field: field, Message: "must have a " + field + " property"}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

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

// Error represents a failure in a GCP adapter operation. It carries the
// adapter name and operation for diagnostics and wraps the backend cause.
type Error struct {
	Adapter   string
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Adapter + "." + e.Operation + ": " + e.Message + " (cause: " + e.Cause.Error() + ")"
	}
	return e.Adapter + "." + e.Operation + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new adapter Error
func NewError(adapter, operation, message string, cause error) *Error {
	return &Error{
		Adapter:   adapter,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

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

// AddressType tags data addresses handled by the BigQuery adapters.
const AddressType = "BigQueryData"

// Data-address property keys.
const (
	FieldProject            = "project"
	FieldDataset            = "dataset"
	FieldTable              = "table"
	FieldQuery              = "query"
	FieldServiceAccountName = "service_account_name"
	FieldCustomerName       = "customer_name"
	FieldDestinationTable   = "destination_table"
)

// DataAddress carries the properties describing a BigQuery source or
// sink.
type DataAddress map[string]string

// Property returns the value stored under key, or "" when absent.
func (a DataAddress) Property(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

func (a DataAddress) Project() string            { return a.Property(FieldProject) }
func (a DataAddress) Dataset() string            { return a.Property(FieldDataset) }
func (a DataAddress) Table() string              { return a.Property(FieldTable) }
func (a DataAddress) Query() string              { return a.Property(FieldQuery) }
func (a DataAddress) ServiceAccountName() string { return a.Property(FieldServiceAccountName) }
func (a DataAddress) CustomerName() string       { return a.Property(FieldCustomerName) }
func (a DataAddress) DestinationTable() string   { return a.Property(FieldDestinationTable) }

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

// FlowRequest is a data-flow start request: where to read from and where
// to write to.
type FlowRequest struct {
	ProcessID   string      `json:"process_id"`
	Source      DataAddress `json:"source"`
	Destination DataAddress `json:"destination"`
}

// RequestParams carries the resolved parameters of a BigQuery transfer
// leg.
type RequestParams struct {
	Project            string
	Dataset            string
	Table              string
	Query              string
	ServiceAccountName string
	DestinationTable   string
	SinkAddress        DataAddress
}

// Target returns the table the params point at.
func (p RequestParams) Target() Target {
	return Target{Project: p.Project, Dataset: p.Dataset, Table: p.Table}
}

// ParamsProvider derives source and sink request params from a flow
// request.
type ParamsProvider struct{}

// SourceParams builds the parameters of the reading leg. The sink address
// travels along so the source can stream directly into the destination.
func (ParamsProvider) SourceParams(req FlowRequest) RequestParams {
	params := paramsFromAddress(req.Source)
	params.DestinationTable = req.Source.DestinationTable()
	params.SinkAddress = req.Destination
	return params
}

// SinkParams builds the parameters of the writing leg.
func (ParamsProvider) SinkParams(req FlowRequest) RequestParams {
	return paramsFromAddress(req.Destination)
}

func paramsFromAddress(addr DataAddress) RequestParams {
	return RequestParams{
		Project:            addr.Project(),
		Dataset:            addr.Dataset(),
		Table:              addr.Table(),
		Query:              addr.Query(),
		ServiceAccountName: addr.ServiceAccountName(),
	}
}

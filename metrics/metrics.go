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

// Package metrics exposes Prometheus metrics for the GCP extension
// adapters. Every vault and provisioner operation is counted and timed
// with an adapter/op label pair.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	opsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gcp_adapter_ops_total",
			Help: "Total number of adapter operations",
		},
		[]string{"adapter", "op"},
	)
	opErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gcp_adapter_op_errors_total",
			Help: "Total number of failed adapter operations",
		},
		[]string{"adapter", "op"},
	)
	opDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gcp_adapter_op_duration_seconds",
			Help:    "Adapter operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"adapter", "op"},
	)
	keysSanitizedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gcp_vault_keys_sanitized_total",
			Help: "Total number of secret keys rewritten to fit naming constraints",
		},
	)
)

func init() {
	prometheus.MustRegister(opsTotal)
	prometheus.MustRegister(opErrorsTotal)
	prometheus.MustRegister(opDuration)
	prometheus.MustRegister(keysSanitizedTotal)
}

// RecordOp records one adapter operation with its duration and outcome.
func RecordOp(adapter, op string, duration time.Duration, err error) {
	opsTotal.WithLabelValues(adapter, op).Inc()
	opDuration.WithLabelValues(adapter, op).Observe(duration.Seconds())
	if err != nil {
		opErrorsTotal.WithLabelValues(adapter, op).Inc()
	}
}

// RecordKeySanitized records a lossy secret key normalization.
func RecordKeySanitized() {
	keysSanitizedTotal.Inc()
}

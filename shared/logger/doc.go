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
Package logger provides structured JSON logging for the GCP extension
components.

# Overview

Log entries are written to stdout as single-line JSON, ready for consumption
by Cloud Logging, ELK, or any other log aggregation system.

Each log entry includes:
  - Timestamp (RFC3339Nano format)
  - Log level (DEBUG, INFO, WARN, ERROR)
  - Component name (vault, provision, iam, ...)
  - Instance ID and container name
  - Custom fields

# Usage

Create a logger for your component:

	log := logger.New("vault")

Log messages with structured fields:

	log.Warn("secret key sanitized", map[string]interface{}{
	    "original": original,
	    "fixed":    fixed,
	})

Attach errors:

	log.ErrorWith("secret store failed", err, nil)

# Environment Variables

  - INSTANCE_ID: Deployment instance identifier
  - HOSTNAME: Container hostname (auto-detected)

# Thread Safety

Logger instances are safe for concurrent use from multiple goroutines.
*/
package logger

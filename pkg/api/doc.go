// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
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

// Package api provides the HTTP API layer for the feedform service.
//
// This package is a thin wrapper around pkg/server: it resolves
// configuration, loads the animal profiles, and mounts the formulation
// engine's routes.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(context.Background()); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET /v1/animals          - supported animal types and their classes
//   - GET /v1/classes          - classes for ?animal_type=
//   - POST /v1/classes         - classes for a form or JSON animal_type
//   - GET /v1/ingredients      - ingredient options by category
//   - POST /v1/formulate       - generate and filter mixtures
//
// System endpoints (no rate limiting):
//   - GET /health  - liveness probe
//   - GET /ready   - readiness probe
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl -X POST http://localhost:8080/v1/formulate \
//	  -H "Content-Type: application/json" \
//	  -d '{"animal_type":"catfish","class":"Grower",
//	       "energy_sources":["Maize","Cassava flour"], ...}'
//
// # Configuration
//
// Server settings come from PORT, SHUTDOWN_TIMEOUT_SECONDS, and LOG_LEVEL.
// Engine settings come from pkg/config (FEEDFORM_* variables and an optional
// .feedform.yaml).
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/feedform/feedform/pkg/api.version=1.0.0'"
package api

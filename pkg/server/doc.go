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

// Package server provides the HTTP server used by the feedform API.
//
// A Server wraps a set of API handlers with a fixed middleware chain and
// adds probe and metrics endpoints:
//
//	s := server.New(
//	    server.WithName("feedformd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/formulate": eng.HandleFormulate,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Middleware
//
// Every API handler runs behind, outermost first: Prometheus metrics, API
// version negotiation (Accept: application/vnd.feedform.v1+json), request
// ID tracking (X-Request-Id), panic recovery, a request body limit, a token
// bucket rate limiter (golang.org/x/time/rate), and debug request logging.
//
// # Endpoints
//
//	GET /         server name, version, readiness, and routes
//	GET /health   liveness; always 200
//	GET /ready    200 when serving, 503 while starting or draining
//	GET /metrics  Prometheus exposition
//
// # Errors
//
// Handlers report failures with WriteError or WriteErrorFromErr, which
// render a single JSON envelope:
//
//	{
//	  "code": "INSUFFICIENT_SELECTION",
//	  "message": "Please select at least 2 items for ...",
//	  "details": {"categories": ["energy_replacers"], "minimum": 2},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-10T12:00:00Z",
//	  "retryable": false
//	}
//
// The HTTP status is derived from the error code by HTTPStatusFromCode.
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
// Run stops gracefully on SIGINT or SIGTERM.
package server

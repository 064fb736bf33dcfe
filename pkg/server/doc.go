// Copyright (c) 2025, Skillsight Authors.
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

// Package server provides the reusable HTTP serving layer for the read
// API: route registration, middleware, error envelopes, and graceful
// lifecycle management.
//
// The server knows nothing about snapshots or search. Application
// handlers are injected through the Config.Handlers map and wrapped in
// the standard middleware chain:
//
//	metrics → request ID → panic recovery → global limiter →
//	per-client limiter → response headers → logging
//
// System endpoints (/, /health, /healthz, /ready, /metrics) bypass the
// two rate limiters so probes keep working while a client is throttled.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("skillsightd"),
//	    server.WithVersion(version),
//	    server.WithHandlers(routes),
//	)
//	if err := s.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until ctx is canceled, then drains in-flight requests for
// up to Config.ShutdownTimeout.
//
// # Error envelopes
//
// All error responses share one JSON shape:
//
//	{
//	  "code": "NOT_FOUND",
//	  "message": "skill not found",
//	  "requestId": "…",
//	  "timestamp": "…",
//	  "retryable": false
//	}
//
// Handlers produce it via WriteError or WriteErrorFromErr; the latter
// maps a StructuredError code to its HTTP status (INVALID_REQUEST 400,
// NOT_FOUND 404, RATE_LIMIT_EXCEEDED 429, MALFORMED_UPSTREAM 500,
// SERVICE_UNAVAILABLE 503, TIMEOUT 504, everything else 500). Error
// responses are marked Cache-Control: no-store so a transient failure
// is never pinned in the shared response cache.
package server

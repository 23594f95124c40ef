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

// Package server provides the HTTP server shared by songser binaries.
//
// Application routes are passed in with WithHandler and wrapped in a
// middleware chain; the server adds system endpoints itself.
//
// # Middleware
//
// Every application route runs, outermost first, through:
//
//   - metrics: request count, latency, in-flight gauge (Prometheus)
//   - version: Accept-header negotiation (application/vnd.songser.v1+json),
//     echoed as X-API-Version
//   - request id: X-Request-Id, generated when missing or not a UUID
//   - panic recovery: 500 with a JSON error envelope
//   - rate limit: token bucket (golang.org/x/time/rate), 429 with Retry-After
//   - access log: one line per request with status, bytes, and the format
//     and track id reported through AnnotateTrack (warn level for 5xx)
//
// # System endpoints
//
//   - GET /        service name, version, formats, and routes
//   - GET /health  liveness
//   - GET /ready   readiness, 503 until Start and after Shutdown
//   - GET /metrics Prometheus exposition
//
// # Errors
//
// Errors use a JSON envelope:
//
//	{
//	  "code": "UNSUPPORTED_FORMAT",
//	  "message": "unsupported format: \"YAML\"",
//	  "details": {"format": "YAML", "supported": ["JSON", "XML"]},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-06-01T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps structured error codes to HTTP status codes.
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
//
// # Usage
//
//	s := server.New(
//		server.WithName("songserd"),
//		server.WithVersion(version),
//		server.WithHandler(map[string]http.HandlerFunc{
//			"/v1/serialize": h.HandleSerialize,
//		}),
//	)
//	if err := s.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Run blocks until SIGINT or SIGTERM and then shuts down gracefully.
package server

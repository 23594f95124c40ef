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

// Package api provides the HTTP API layer for the songser service.
//
// This package is a thin wrapper around pkg/server: it configures the
// server with the /v1/serialize route and starts it.
//
// # Usage
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//
//   - GET  /v1/serialize?id=1&title=Water+of+Love&artist=Dire+Straits&format=xml
//   - POST /v1/serialize?format=json with body {"id":"1","title":"...","artist":"..."}
//
// The response body is the encoded track with Content-Type application/json
// or application/xml. The format parameter is case-insensitive and defaults
// to JSON. When a catalog is configured, GET with only an id serializes the
// catalog entry.
//
// Errors:
//
//   - 400 UNSUPPORTED_FORMAT: format has no encoder; details.format holds it
//   - 400 INVALID_REQUEST: missing id, malformed body
//   - 404 NOT_FOUND: id not in the catalog
//   - 405 METHOD_NOT_ALLOWED: anything but GET and POST
//
// System endpoints (no rate limiting): /, /health, /ready, /metrics.
//
// # Configuration
//
//   - PORT, SHUTDOWN_TIMEOUT_SECONDS: see pkg/server
//   - LOG_LEVEL: debug, info, warn, error
//   - SONGSER_CATALOG: catalog source (file, URL, or cm://namespace/name)
//   - SONGSER_KUBECONFIG: kubeconfig for cm:// catalogs
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/songkit/songser/pkg/api.version=1.0.0'"
package api

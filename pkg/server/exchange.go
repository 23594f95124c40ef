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

package server

import (
	"context"
	"net/http"
	"sync"
)

// exchange wraps the ResponseWriter of one request. It keeps the first
// status written and the body size for metrics and the access log, and
// carries the format and track id the handler served.
type exchange struct {
	http.ResponseWriter

	status      int
	bytes       int
	wroteHeader bool

	// handlers may annotate from another goroutine (http.TimeoutHandler)
	mu      sync.Mutex
	format  string
	trackID string
}

// exchangeFor returns the exchange already wrapping w, or wraps w in a new
// one and stores it in the request context for AnnotateTrack.
func exchangeFor(w http.ResponseWriter, r *http.Request) (*exchange, *http.Request) {
	if ex, ok := w.(*exchange); ok {
		return ex, r
	}
	ex := &exchange{ResponseWriter: w, status: http.StatusOK}
	return ex, r.WithContext(context.WithValue(r.Context(), contextKeyExchange, ex))
}

// WriteHeader records the status. Only the first call reaches the client.
func (e *exchange) WriteHeader(code int) {
	if e.wroteHeader {
		return
	}
	e.status = code
	e.wroteHeader = true
	e.ResponseWriter.WriteHeader(code)
}

func (e *exchange) Write(b []byte) (int, error) {
	if !e.wroteHeader {
		e.WriteHeader(http.StatusOK)
	}
	n, err := e.ResponseWriter.Write(b)
	e.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (e *exchange) Unwrap() http.ResponseWriter {
	return e.ResponseWriter
}

func (e *exchange) annotate(format, trackID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.format = format
	e.trackID = trackID
}

func (e *exchange) served() (format, trackID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.format, e.trackID
}

// AnnotateTrack records the format and track id a handler is serving so
// the access log and panic recovery can report them. It is a no-op outside
// the middleware chain.
func AnnotateTrack(ctx context.Context, format, trackID string) {
	if ex, ok := ctx.Value(contextKeyExchange).(*exchange); ok {
		ex.annotate(format, trackID)
	}
}

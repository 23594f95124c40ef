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
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type middleware func(http.HandlerFunc) http.HandlerFunc

// withMiddleware wraps handler in the request chain, outermost first.
// Panic recovery sits outside the rate limiter so a panicking request
// still consumes its token.
func (s *Server) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return chain(handler,
		s.metricsMiddleware,
		s.versionMiddleware,
		s.requestIDMiddleware,
		s.panicRecoveryMiddleware,
		s.rateLimitMiddleware,
		s.accessLogMiddleware,
	)
}

func chain(h http.HandlerFunc, mws ...middleware) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// versionMiddleware negotiates the API version from the Accept header.
func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := negotiateAPIVersion(r)
		SetAPIVersionHeader(w, version)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyAPIVersion, version)))
	}
}

// requestIDMiddleware keeps a client X-Request-Id when it is a UUID and
// mints one otherwise.
func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, requestID)))
	}
}

func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow() {
			rateLimitRejects.Inc()
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": s.config.RateLimit,
					"burst": s.config.RateLimitBurst,
				})
			return
		}

		remaining := max(int(s.rateLimiter.Tokens()), 0)
		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(int(s.config.RateLimit)))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))

		next.ServeHTTP(w, r)
	}
}

// panicRecoveryMiddleware turns a handler panic into a 500 envelope. When
// the handler had already annotated a track, the serialization is counted
// as an error.
func (s *Server) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ex, r := exchangeFor(w, r)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			panicRecoveries.Inc()

			format, trackID := ex.served()
			if format != "" {
				RecordSerialization(format, OutcomeError)
			}
			slog.Error("panic recovered",
				"error", fmt.Sprint(rec),
				"requestID", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"format", format,
				"trackID", trackID,
			)
			WriteError(ex, r, http.StatusInternalServerError, ErrCodeInternalError,
				"Internal server error", true, nil)
		}()
		next.ServeHTTP(ex, r)
	}
}

// accessLogMiddleware logs one line per request with the status, body
// size, and the format and track id the handler reported through
// AnnotateTrack. Server errors are logged at warn, the rest at debug.
func (s *Server) accessLogMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ex, r := exchangeFor(w, r)

		next.ServeHTTP(ex, r)

		level := slog.LevelDebug
		if ex.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{
			slog.String("requestID", RequestIDFromContext(r.Context())),
			slog.String("apiVersion", APIVersionFromContext(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ex.status),
			slog.Int("bytes", ex.bytes),
			slog.Duration("duration", time.Since(start)),
		}
		if format, trackID := ex.served(); format != "" {
			attrs = append(attrs, slog.String("format", format), slog.String("trackID", trackID))
		}
		slog.LogAttrs(r.Context(), level, "request completed", attrs...)
	}
}

// WithTimeout bounds h with http.TimeoutHandler. A request that runs past
// d gets a 503 carrying the JSON error envelope with code TIMEOUT; its
// timestamp is the time the request arrived.
func WithTimeout(h http.HandlerFunc, d time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(ErrorResponse{
			Code:      string(ErrCodeTimeout),
			Message:   "Request timed out",
			RequestID: RequestIDFromContext(r.Context()),
			Timestamp: time.Now().UTC(),
			Retryable: true,
		})
		if err != nil {
			body = []byte(`{"code":"TIMEOUT","message":"Request timed out","retryable":true}`)
		}
		// the handler's own headers replace this unless it times out
		w.Header().Set("Content-Type", "application/json")
		http.TimeoutHandler(h, d, string(body)).ServeHTTP(w, r)
	}
}

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
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/songkit/songser/pkg/errors"
	"github.com/songkit/songser/pkg/serializer"
)

// Error codes used in HTTP error responses.
const (
	ErrCodeRateLimitExceeded  = apperrors.ErrCodeRateLimitExceeded
	ErrCodeInternalError      = apperrors.ErrCodeInternal
	ErrCodeServiceUnavailable = apperrors.ErrCodeUnavailable
	ErrCodeInvalidRequest     = apperrors.ErrCodeInvalidRequest
	ErrCodeMethodNotAllowed   = apperrors.ErrCodeMethodNotAllowed
	ErrCodeNotFound           = apperrors.ErrCodeNotFound
	ErrCodeUnsupportedFormat  = apperrors.ErrCodeUnsupportedFormat
	ErrCodeTimeout            = apperrors.ErrCodeTimeout
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// WriteError writes an ErrorResponse with the request id from the context.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err to a status code and envelope. Structured
// errors contribute their code, message, and context; an unsupported
// format becomes a 400 carrying the rejected tag. Anything else is a 500
// with message as the fallback text.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string, details map[string]any) {
	var ufe *serializer.UnsupportedFormatError
	if errors.As(err, &ufe) {
		WriteError(w, r, http.StatusBadRequest, ErrCodeUnsupportedFormat, ufe.Error(), false,
			mergeDetails(details, map[string]any{
				"format":    string(ufe.Format),
				"supported": serializer.SupportedFormats(),
			}))
		return
	}

	var se *apperrors.StructuredError
	if errors.As(err, &se) {
		extra := make(map[string]any, len(se.Context)+1)
		for k, v := range se.Context {
			extra[k] = v
		}
		if se.Cause != nil {
			extra["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), mergeDetails(details, extra))
		return
	}

	WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError, message,
		retryableFromCode(ErrCodeInternalError), mergeDetails(details, map[string]any{"error": err.Error()}))
}

// HTTPStatusFromCode returns the HTTP status for an error code.
func HTTPStatusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeUnsupportedFormat:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeTimeout, apperrors.ErrCodeUnavailable,
		apperrors.ErrCodeRateLimitExceeded, apperrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with b's entries overriding a's, or nil
// when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

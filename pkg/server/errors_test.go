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
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/songkit/songser/pkg/errors"
	"github.com/songkit/songser/pkg/serializer"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code apperrors.ErrorCode
		want int
	}{
		{apperrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{apperrors.ErrCodeUnsupportedFormat, http.StatusBadRequest},
		{apperrors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrCodeNotFound, http.StatusNotFound},
		{apperrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{apperrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{apperrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
		{apperrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	retryable := map[apperrors.ErrorCode]bool{
		apperrors.ErrCodeInvalidRequest:    false,
		apperrors.ErrCodeUnsupportedFormat: false,
		apperrors.ErrCodeUnauthorized:      false,
		apperrors.ErrCodeNotFound:          false,
		apperrors.ErrCodeMethodNotAllowed:  false,
		apperrors.ErrCodeTimeout:           true,
		apperrors.ErrCodeUnavailable:       true,
		apperrors.ErrCodeRateLimitExceeded: true,
		apperrors.ErrCodeInternal:          true,
		"SOMETHING_ELSE":                   false,
	}

	for code, want := range retryable {
		assert.Equal(t, want, retryableFromCode(code), "code %s", code)
	}
}

func TestMergeDetails(t *testing.T) {
	assert.Nil(t, mergeDetails(nil, nil))
	assert.Nil(t, mergeDetails(map[string]any{}, map[string]any{}))

	got := mergeDetails(map[string]any{"a": 1, "shared": "old"}, map[string]any{"b": 2, "shared": "new"})
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "shared": "new"}, got)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusBadRequest, ErrCodeInvalidRequest, "bad request", false, map[string]any{"k": "v"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, string(ErrCodeInvalidRequest), resp.Code)
	assert.Equal(t, "bad request", resp.Message)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.False(t, resp.Retryable)
	assert.Equal(t, "v", resp.Details["k"])
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteErrorFromErr_UnsupportedFormat(t *testing.T) {
	_, err := serializer.Serialize(waterOfLove(), serializer.Format("YAML"))
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteErrorFromErr(rec, httptest.NewRequest(http.MethodGet, "/", nil),
		fmt.Errorf("serialize: %w", err), "fallback", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, string(ErrCodeUnsupportedFormat), resp.Code)
	assert.Equal(t, "YAML", resp.Details["format"])
	assert.Equal(t, []any{"JSON", "XML"}, resp.Details["supported"])
	assert.False(t, resp.Retryable)
	assert.NotEmpty(t, resp.RequestID)
}

func TestWriteErrorFromErr_StructuredError(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperrors.WrapWithContext(apperrors.ErrCodeUnavailable, "registry unavailable", cause,
		map[string]any{"registry": "ghcr.io"})

	rec := httptest.NewRecorder()
	WriteErrorFromErr(rec, httptest.NewRequest(http.MethodGet, "/", nil), err, "fallback", map[string]any{"extra": "yes"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, string(ErrCodeServiceUnavailable), resp.Code)
	assert.Equal(t, "registry unavailable", resp.Message)
	assert.True(t, resp.Retryable)
	assert.Equal(t, "ghcr.io", resp.Details["registry"])
	assert.Equal(t, "yes", resp.Details["extra"])
	assert.Equal(t, "connection refused", resp.Details["error"])
}

func TestWriteErrorFromErr_NonStructuredFallsBackToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorFromErr(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"), "fallback", map[string]any{"x": "y"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, string(ErrCodeInternalError), resp.Code)
	assert.Equal(t, "fallback", resp.Message)
	assert.True(t, resp.Retryable)
	assert.Equal(t, "y", resp.Details["x"])
	assert.Equal(t, "boom", resp.Details["error"])
}

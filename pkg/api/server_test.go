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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songkit/songser/pkg/catalog"
	"github.com/songkit/songser/pkg/server"
)

const (
	wantJSON = `{"id": "1", "title": "Water of Love", "artist": "Dire Straits"}`
	wantXML  = `<song id="1"><title>Water of Love</title><artist>Dire Straits</artist></song>`
)

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.HandleSerialize(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "songserd", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestHandleSerialize_GET(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
	}{
		{"json", "format=JSON", "application/json; charset=utf-8", wantJSON},
		{"json lowercase", "format=json", "application/json; charset=utf-8", wantJSON},
		{"json default", "", "application/json; charset=utf-8", wantJSON},
		{"xml", "format=xml", "application/xml; charset=utf-8", wantXML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/v1/serialize?id=1&title=Water+of+Love&artist=Dire+Straits"
			if tt.query != "" {
				target += "&" + tt.query
			}
			rec := serve(NewHandler(), httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.body, rec.Body.String())
		})
	}
}

func TestHandleSerialize_POST(t *testing.T) {
	body := `{"id": "1", "title": "Water of Love", "artist": "Dire Straits"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/serialize?format=XML", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := serve(NewHandler(), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wantXML, rec.Body.String())
}

func TestHandleSerialize_UnsupportedFormat(t *testing.T) {
	rec := serve(NewHandler(), httptest.NewRequest(http.MethodGet,
		"/v1/serialize?id=1&title=Water+of+Love&artist=Dire+Straits&format=YAML", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, string(server.ErrCodeUnsupportedFormat), resp.Code)
	assert.Equal(t, "YAML", resp.Details["format"])
	assert.NotContains(t, rec.Body.String(), "<song")
}

func TestHandleSerialize_InvalidRequests(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"missing id", http.MethodGet, "/v1/serialize?title=x&artist=y", ""},
		{"blank id", http.MethodGet, "/v1/serialize?id=+++", ""},
		{"empty body", http.MethodPost, "/v1/serialize", ""},
		{"malformed body", http.MethodPost, "/v1/serialize", `{invalid}`},
		{"unknown field", http.MethodPost, "/v1/serialize", `{"id":"1","album":"x"}`},
		{"two documents", http.MethodPost, "/v1/serialize", `{"id":"1"} {"id":"2"}`},
		{"body without id", http.MethodPost, "/v1/serialize", `{"title":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" || tt.method == http.MethodPost {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			rec := serve(NewHandler(), req)

			assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", rec.Body.String())
			assert.Equal(t, string(server.ErrCodeInvalidRequest), decodeError(t, rec).Code)
		})
	}
}

func TestHandleSerialize_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			rec := serve(NewHandler(), httptest.NewRequest(method, "/v1/serialize", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
		})
	}
}

func TestHandleSerialize_Catalog(t *testing.T) {
	c, err := catalog.Parse(strings.NewReader("tracks:\n  - id: \"1\"\n    title: Water of Love\n    artist: Dire Straits\n"))
	require.NoError(t, err)
	h := NewHandler(WithCatalog(c))

	t.Run("id lookup", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/serialize?id=1&format=xml", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, wantXML, rec.Body.String())
	})

	t.Run("explicit fields win", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/serialize?id=1&title=Other&artist=Band", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"id": "1", "title": "Other", "artist": "Band"}`, rec.Body.String())
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/serialize?id=99", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "99", decodeError(t, rec).Details["id"])
	})
}

func TestRoutes_ThroughServer(t *testing.T) {
	s := server.New(server.WithHandler(routes(NewHandler())))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/v1/serialize?id=1&title=Water+of+Love&artist=Dire+Straits&format=XML", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wantXML, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
}

func TestRoutes_NonASCIIIsEscaped(t *testing.T) {
	s := server.New(server.WithHandler(routes(NewHandler())))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/v1/serialize?id=7&title=Ace+of+Spades&artist=Mot%C3%B6rhead", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"id": "7", "title": "Ace of Spades", "artist": "Mot\u00f6rhead"}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestHandlerOptions_CatalogURL(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("tracks:\n  - id: \"1\"\n    title: Water of Love\n    artist: Dire Straits\n"))
	}))
	defer srv.Close()

	t.Setenv(EnvCatalog, srv.URL)
	opts, err := handlerOptions(t.Context())
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, name+"/"+version, userAgent)

	rec := serve(NewHandler(opts...), httptest.NewRequest(http.MethodGet, "/v1/serialize?id=1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wantJSON, rec.Body.String())
}

func TestHandleSerialize_Concurrent(t *testing.T) {
	h := NewHandler()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := serve(h, httptest.NewRequest(http.MethodGet,
				"/v1/serialize?id=1&title=Water+of+Love&artist=Dire+Straits", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, wantJSON, rec.Body.String())
		}()
	}
	wg.Wait()
}

func TestHandlerOptions_NoCatalog(t *testing.T) {
	t.Setenv(EnvCatalog, "")
	opts, err := handlerOptions(t.Context())
	require.NoError(t, err)
	assert.Empty(t, opts)
}

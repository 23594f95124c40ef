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
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/songkit/songser/pkg/catalog"
	"github.com/songkit/songser/pkg/defaults"
	apperrors "github.com/songkit/songser/pkg/errors"
	"github.com/songkit/songser/pkg/serializer"
	"github.com/songkit/songser/pkg/server"
	"github.com/songkit/songser/pkg/track"
)

// Handler serves /v1/serialize.
type Handler struct {
	catalog *catalog.Catalog
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCatalog lets GET requests that only carry an id resolve the track
// from c.
func WithCatalog(c *catalog.Catalog) HandlerOption {
	return func(h *Handler) {
		h.catalog = c
	}
}

// NewHandler returns a Handler.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleSerialize encodes the requested track in the requested format.
func (h *Handler) HandleSerialize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, server.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	rawFormat := r.URL.Query().Get("format")
	if strings.TrimSpace(rawFormat) == "" {
		rawFormat = string(serializer.FormatJSON)
	}
	format, err := serializer.ParseFormat(rawFormat)
	if err != nil {
		server.RecordSerialization(rawFormat, server.OutcomeUnsupported)
		server.WriteErrorFromErr(w, r, err, "Unsupported format", nil)
		return
	}

	var t track.Track
	if r.Method == http.MethodPost {
		t, err = decodeTrack(w, r)
	} else {
		t, err = h.trackFromQuery(r)
	}
	if err != nil {
		server.RecordSerialization(string(format), server.OutcomeInvalid)
		server.WriteErrorFromErr(w, r, err, "Invalid track", nil)
		return
	}

	if err := t.Validate(); err != nil {
		server.RecordSerialization(string(format), server.OutcomeInvalid)
		server.WriteErrorFromErr(w, r, err, "Invalid track", nil)
		return
	}

	server.AnnotateTrack(r.Context(), string(format), t.ID)
	w.Header().Set("Cache-Control", "no-store")
	if err := serializer.Respond(w, http.StatusOK, t, format); err != nil {
		server.RecordSerialization(string(format), server.OutcomeError)
		return
	}
	server.RecordSerialization(string(format), server.OutcomeSuccess)
}

func (h *Handler) trackFromQuery(r *http.Request) (track.Track, error) {
	q := r.URL.Query()
	id := q.Get("id")

	_, hasTitle := q["title"]
	_, hasArtist := q["artist"]
	if h.catalog != nil && id != "" && !hasTitle && !hasArtist {
		return h.catalog.Find(id)
	}

	return track.New(id, q.Get("title"), q.Get("artist")), nil
}

func decodeTrack(w http.ResponseWriter, r *http.Request) (track.Track, error) {
	body := http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var t track.Track
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return track.Track{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "request body is empty")
		}
		return track.Track{}, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to decode track", err)
	}
	if dec.More() {
		return track.Track{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "request body must hold a single track")
	}
	return t, nil
}

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

package serializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/songkit/songser/pkg/track"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Serialize first to detect errors before writing headers
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

// Respond writes t encoded in format f with the format's content type.
// Callers are expected to have checked the format; when encoding fails
// nothing of the document is written, the response is a plain 500, and
// the encoding error is returned. Write failures are only logged.
func Respond(w http.ResponseWriter, statusCode int, t track.Track, f Format) error {
	doc, err := Serialize(t, f)
	if err != nil {
		slog.Error("track encoding failed", "error", err, "format", f)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", f.ContentType()+"; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(doc)); err != nil {
		slog.Warn("response write failed", "error", err)
	}
	return nil
}

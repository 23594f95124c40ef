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

// Package serializer turns a track into a JSON or XML document.
//
// The format tag selects an encoder from a fixed two-entry table. Lookup
// and encoding are separate steps: EncoderFor returns the encoder for a tag
// and Serialize runs lookup then encoding. An unknown tag fails with an
// *UnsupportedFormatError that carries the tag.
//
//	out, err := serializer.Serialize(track.New("1", "Water of Love", "Dire Straits"), serializer.FormatXML)
//	// <song id="1"><title>Water of Love</title><artist>Dire Straits</artist></song>
//
// Output documents:
//
//	JSON: {"id": "1", "title": "Water of Love", "artist": "Dire Straits"}
//	XML:  <song id="1"><title>Water of Love</title><artist>Dire Straits</artist></song>
//
// Writers deliver the document to a destination. NewFileWriterOrStdout
// routes a target string:
//
//   - "" or "-": stdout
//   - cm://namespace/name: Kubernetes ConfigMap (server-side apply)
//   - oci://registry/repository[:tag]: OCI artifact push
//   - anything else: a local file
//
// For HTTP responses:
//
//	serializer.Respond(w, http.StatusOK, t, serializer.FormatJSON)
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// Encoders are pure functions; the package is safe for concurrent use.
package serializer

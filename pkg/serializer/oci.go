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
	"context"
	"fmt"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/songkit/songser/pkg/defaults"
	"github.com/songkit/songser/pkg/oci"
	"github.com/songkit/songser/pkg/track"
)

// Manifest annotation keys set on pushed tracks.
const (
	AnnotationTrackID = "io.songser.track.id"
	AnnotationFormat  = "io.songser.format"
)

// OCIWriter pushes a serialized track to an OCI registry as a
// single-layer artifact.
type OCIWriter struct {
	ref         *oci.Reference
	format      Format
	version     string
	plainHTTP   bool
	insecureTLS bool
	push        func(context.Context, oci.PushOptions, oci.Document) (*oci.PushResult, error)
	now         func() time.Time
	last        *oci.PushResult
}

// NewOCIWriter creates a writer pushing to ref in the given format.
func NewOCIWriter(ref *oci.Reference, format Format) *OCIWriter {
	return &OCIWriter{
		ref:     ref,
		format:  format,
		version: "unknown",
		push:    oci.Push,
		now:     time.Now,
	}
}

// Serialize encodes t and pushes it to the registry.
func (w *OCIWriter) Serialize(ctx context.Context, t track.Track) error {
	doc, err := Serialize(t, w.format)
	if err != nil {
		return err
	}

	pushCtx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	res, err := w.push(pushCtx, oci.PushOptions{
		Reference:   w.ref,
		PlainHTTP:   w.plainHTTP,
		InsecureTLS: w.insecureTLS,
	}, oci.Document{
		Content:   []byte(doc),
		MediaType: w.format.ContentType(),
		Title:     "track." + w.format.Extension(),
		Annotations: map[string]string{
			ociv1.AnnotationCreated: w.now().UTC().Format(time.RFC3339),
			ociv1.AnnotationVersion: w.version,
			AnnotationTrackID:       t.ID,
			AnnotationFormat:        string(w.format),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to push track %s to %s: %w", t.ID, w.ref, err)
	}
	w.last = res
	return nil
}

// Result returns the outcome of the most recent successful push, or nil.
func (w *OCIWriter) Result() *oci.PushResult {
	return w.last
}

// Close is a no-op for OCIWriter.
func (w *OCIWriter) Close() error {
	return nil
}

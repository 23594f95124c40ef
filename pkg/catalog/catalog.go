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

package catalog

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	apperrors "github.com/songkit/songser/pkg/errors"
	"github.com/songkit/songser/pkg/header"
	"github.com/songkit/songser/pkg/track"
)

// Catalog is an ordered list of tracks. The kind/apiVersion header is
// optional; when present it must name a Catalog.
type Catalog struct {
	header.Header `json:",inline" yaml:",inline"`

	Tracks []track.Track `json:"tracks" yaml:"tracks"`
}

// Parse decodes and validates a catalog document.
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "catalog is empty")
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to parse catalog", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the header, that the catalog has at least one track,
// every track has an id, and no id repeats.
func (c *Catalog) Validate() error {
	if err := c.Check(header.KindCatalog); err != nil {
		return err
	}
	if len(c.Tracks) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "catalog has no tracks")
	}

	seen := make(map[string]int, len(c.Tracks))
	for i, t := range c.Tracks {
		if err := t.Validate(); err != nil {
			return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid track at index %d", i), err, map[string]any{"index": i})
		}
		if prev, ok := seen[t.ID]; ok {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				"duplicate track id", map[string]any{
					"id":    t.ID,
					"first": prev,
					"index": i,
				})
		}
		seen[t.ID] = i
	}
	return nil
}

// Find returns the track with the given id.
func (c *Catalog) Find(id string) (track.Track, error) {
	for _, t := range c.Tracks {
		if t.ID == id {
			return t, nil
		}
	}
	return track.Track{}, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
		"track not found in catalog", map[string]any{"id": id})
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	return len(c.Tracks)
}

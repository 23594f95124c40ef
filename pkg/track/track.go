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

package track

import (
	"strings"

	apperrors "github.com/songkit/songser/pkg/errors"
)

// Track is a single music track. ID is opaque and must be non-empty;
// Title and Artist may be empty.
type Track struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Artist string `json:"artist" yaml:"artist"`
}

// New returns a Track with the given fields.
func New(id, title, artist string) Track {
	return Track{
		ID:     id,
		Title:  title,
		Artist: artist,
	}
}

// Validate checks that the track carries an identifier. No other field is
// inspected.
func (t Track) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"track id cannot be empty", map[string]any{
				"title":  t.Title,
				"artist": t.Artist,
			})
	}
	return nil
}

// String returns a short human-readable form used in log lines.
func (t Track) String() string {
	return t.ID + ": " + t.Artist + " - " + t.Title
}

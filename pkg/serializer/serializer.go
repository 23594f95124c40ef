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
	"errors"
	"fmt"

	"github.com/songkit/songser/pkg/track"
)

// ErrUnsupportedFormat matches any *UnsupportedFormatError via errors.Is.
var ErrUnsupportedFormat = errors.New("unsupported format")

// UnsupportedFormatError is returned when a format tag has no encoder.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %q", string(e.Format))
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Encoder converts a track into its textual representation.
type Encoder func(track.Track) (string, error)

// encoders is the complete format table. It is never modified.
var encoders = map[Format]Encoder{
	FormatJSON: EncodeJSON,
	FormatXML:  EncodeXML,
}

// EncoderFor returns the encoder registered for f.
func EncoderFor(f Format) (Encoder, error) {
	enc, ok := encoders[f]
	if !ok {
		return nil, &UnsupportedFormatError{Format: f}
	}
	return enc, nil
}

// Serialize encodes t in format f. The track is not validated.
// On error no partial output is returned.
func Serialize(t track.Track, f Format) (string, error) {
	enc, err := EncoderFor(f)
	if err != nil {
		return "", err
	}
	return enc(t)
}

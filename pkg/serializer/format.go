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

import "strings"

// Format is the output format tag.
type Format string

const (
	// FormatJSON selects the JSON encoder.
	FormatJSON Format = "JSON"
	// FormatXML selects the XML encoder.
	FormatXML Format = "XML"
)

// ParseFormat converts user input (flags, query params) into a Format.
// Matching ignores case and surrounding whitespace. Unknown input returns
// an *UnsupportedFormatError carrying the input as given.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return f, &UnsupportedFormatError{Format: Format(s)}
	}
	return f, nil
}

// IsUnknown reports whether f has no encoder.
func (f Format) IsUnknown() bool {
	_, ok := encoders[f]
	return !ok
}

func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension for documents of this format,
// without the leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	default:
		return "txt"
	}
}

// ContentType returns the MIME type for documents of this format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXML:
		return "application/xml"
	default:
		return "text/plain"
	}
}

// SupportedFormats returns a list of all supported output formats
// for serialization.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatXML),
	}
}

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
	"strings"
	"unicode/utf16"

	"github.com/songkit/songser/pkg/track"
)

const hexDigits = "0123456789abcdef"

// EncodeJSON renders t as a single-line JSON object with keys in the order
// id, title, artist, separated by ", " and ": ".
//
// Output is pure ASCII: runes outside printable ASCII are written as
// lowercase \uXXXX escapes (surrogate pairs above U+FFFF), and '/' and
// HTML characters are left as-is.
func EncodeJSON(t track.Track) (string, error) {
	fields := [...]struct{ key, value string }{
		{"id", t.ID},
		{"title", t.Title},
		{"artist", t.Artist},
	}

	var b strings.Builder
	b.Grow(len(t.ID) + len(t.Title) + len(t.Artist) + 40)
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		writeJSONString(&b, f.key)
		b.WriteString(": ")
		writeJSONString(&b, f.value)
	}
	b.WriteByte('}')
	return b.String(), nil
}

// writeJSONString quotes s. Invalid UTF-8 bytes are written as \ufffd.
func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r >= 0x20 && r < 0x7f:
			b.WriteByte(byte(r))
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			writeUnicodeEscape(b, hi)
			writeUnicodeEscape(b, lo)
		default:
			writeUnicodeEscape(b, r)
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	for shift := 12; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(r>>shift)&0xf])
	}
}

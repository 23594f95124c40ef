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

	"github.com/songkit/songser/pkg/track"
)

// EncodeXML renders t as a <song> element with an id attribute and
// title/artist children. No XML declaration is written.
//
// Element text escapes only '&', '<', '>' (and '\r', which parsers would
// otherwise fold into '\n'). The attribute additionally escapes '"' as
// &quot; and tab, newline and carriage return as character references.
// Runes that XML 1.0 cannot carry, such as C0 controls other than tab,
// newline and carriage return, are replaced with U+FFFD.
func EncodeXML(t track.Track) (string, error) {
	var b strings.Builder
	b.Grow(len(t.ID) + len(t.Title) + len(t.Artist) + 56)

	b.WriteString(`<song id="`)
	writeXMLAttr(&b, t.ID)
	b.WriteString(`"><title>`)
	writeXMLText(&b, t.Title)
	b.WriteString(`</title><artist>`)
	writeXMLText(&b, t.Artist)
	b.WriteString(`</artist></song>`)

	return b.String(), nil
}

func writeXMLText(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\r':
			b.WriteString("&#13;")
		default:
			b.WriteRune(xmlChar(r))
		}
	}
}

func writeXMLAttr(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\t':
			b.WriteString("&#09;")
		case '\n':
			b.WriteString("&#10;")
		case '\r':
			b.WriteString("&#13;")
		default:
			b.WriteRune(xmlChar(r))
		}
	}
}

// xmlChar returns r, or U+FFFD when r is outside the XML 1.0 Char production.
func xmlChar(r rune) rune {
	switch {
	case r == 0x09 || r == 0x0a || r == 0x0d,
		r >= 0x20 && r <= 0xd7ff,
		r >= 0xe000 && r <= 0xfffd,
		r >= 0x10000 && r <= 0x10ffff:
		return r
	default:
		return '\uFFFD'
	}
}

// Package encoding repairs statement files whose bytes are not valid
// UTF-8 before any tabular parsing happens.
package encoding

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize turns raw file bytes into a UTF-8 string. Valid UTF-8 is
// returned as-is after stripping a leading byte-order mark. Anything
// else is decoded as Latin-1, which maps every byte to a code point and
// therefore never fails. Mixed or multi-byte legacy encodings other
// than Latin-1 come out garbled but never crash downstream splitting.
func Normalize(content []byte) string {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return string(content)
	}
	repaired, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		// The Latin-1 decoder cannot fail on any byte; fall back to
		// the replacement-rune conversion done by string().
		return string(content)
	}
	return string(repaired)
}

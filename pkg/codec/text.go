package codec

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	dberr "flexdb/pkg/error"
)

// Ascii decodes a fixed-width character field. Bytes other than tab through
// carriage return and printable characters are dropped, each remaining byte
// becomes one character, and surrounding whitespace is trimmed.
func Ascii(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if (c > 8 && c < 14) || c > 31 {
			b.WriteRune(rune(c))
		}
	}
	return strings.TrimSpace(b.String())
}

// Text decodes a length-prefixed TEXT field: a little-endian u16 holding the
// occupied length followed by the characters. The decoded character count
// must equal the declared length.
func Text(data []byte) (string, error) {
	if len(data) < 4 {
		return "", dberr.TextDecoding("text field needs at least 4 bytes, got %d", len(data))
	}

	declared := int(binary.LittleEndian.Uint16(data[:2]))
	text := Ascii(data[2:])

	if n := utf8.RuneCountInString(text); n != declared {
		return "", dberr.TextDecoding("expected a %d-character text field but decoded %d characters", declared, n)
	}
	return text, nil
}

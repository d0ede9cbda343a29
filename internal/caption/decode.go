package caption

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Decode turns raw subtitle bytes into text. Valid UTF-8 is returned as is;
// anything else is read as ISO-8859-1, where every byte maps to a rune.
func Decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// unreachable for ISO-8859-1, fall back to a byte-per-rune copy
		var sb strings.Builder
		sb.Grow(len(data) * 2)
		for _, b := range data {
			sb.WriteRune(rune(b))
		}
		return sb.String()
	}
	return string(decoded)
}

func normalizeNewlines(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

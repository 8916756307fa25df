package core

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

// DecodeTextString converts a PDF text string to UTF-8. Strings beginning
// with the UTF-16BE byte order mark are decoded as UTF-16; everything else is
// treated as PDFDocEncoding, which matches Latin-1 for the printable range.
func DecodeTextString(s String) string {
	b := []byte(s)

	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(b)
		if err == nil {
			return string(out)
		}
		// Fall through to the byte-wise path on malformed UTF-16.
	}

	var buf bytes.Buffer
	for _, c := range b {
		buf.WriteRune(rune(c))
	}
	return buf.String()
}

package filters

import (
	"bytes"
	"fmt"
)

// ASCIIHexDecode decodes ASCII hexadecimal encoded data. Whitespace is
// ignored and > marks end of data; an odd trailing digit implies a zero.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	var result bytes.Buffer
	var pending byte
	havePending := false

	for _, c := range data {
		if isWhitespace(c) {
			continue
		}
		if c == '>' {
			break
		}
		v, err := hexDigit(c)
		if err != nil {
			return nil, err
		}
		if havePending {
			result.WriteByte(pending<<4 | v)
			havePending = false
		} else {
			pending = v
			havePending = true
		}
	}
	if havePending {
		result.WriteByte(pending << 4)
	}
	return result.Bytes(), nil
}

// ASCII85Decode decodes ASCII base-85 encoded data. Each group of five
// characters (! through u) encodes four bytes; z encodes four zero bytes and
// ~> marks end of data.
func ASCII85Decode(data []byte) ([]byte, error) {
	var result bytes.Buffer

	i := 0
	for i < len(data) {
		if isWhitespace(data[i]) {
			i++
			continue
		}
		if i+1 < len(data) && data[i] == '~' && data[i+1] == '>' {
			break
		}
		if data[i] == 'z' {
			result.Write([]byte{0, 0, 0, 0})
			i++
			continue
		}

		digits := make([]byte, 0, 5)
		for len(digits) < 5 && i < len(data) {
			if isWhitespace(data[i]) {
				i++
				continue
			}
			if i+1 < len(data) && data[i] == '~' && data[i+1] == '>' {
				break
			}
			if data[i] < '!' || data[i] > 'u' {
				return nil, fmt.Errorf("invalid ASCII85 character %c", data[i])
			}
			digits = append(digits, data[i]-'!')
			i++
		}
		if len(digits) == 0 {
			break
		}

		// A short final group of n digits yields n-1 bytes; pad with the
		// highest digit value for decoding.
		n := len(digits) - 1
		if n > 4 {
			n = 4
		}
		for len(digits) < 5 {
			digits = append(digits, 84)
		}

		value := uint32(0)
		for _, d := range digits {
			value = value*85 + uint32(d)
		}
		for j := 0; j < n; j++ {
			result.WriteByte(byte(value >> (24 - j*8)))
		}
	}

	return result.Bytes(), nil
}

// hexDigit converts a hexadecimal character to its value.
func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit %c", c)
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

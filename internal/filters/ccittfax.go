package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes CCITT Group 3/4 fax compressed data, the encoding
// used for bi-level scans.
//
// Parameters: K selects the group (-1 = Group 4, otherwise Group 3), Columns
// defaults to 1728, Rows of zero auto-detects the height, and BlackIs1 maps
// to the decoder's Invert option.
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	columns := params.Columns
	if columns <= 1 {
		columns = 1728
	}

	sf := ccitt.Group3
	if params.K < 0 {
		sf = ccitt.Group4
	}

	rows := params.Rows
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	opts := &ccitt.Options{Invert: params.BlackIs1}
	reader := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, columns, rows, opts)
	return io.ReadAll(reader)
}

package filters

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
)

// Params carries the decode parameters from a stream dictionary. The zero
// value of Predictor (0) and 1 both mean "no prediction".
type Params struct {
	Predictor        int
	Colors           int
	BitsPerComponent int
	Columns          int

	// CCITTFaxDecode parameters.
	K        int
	Rows     int
	BlackIs1 bool
}

// FlateDecode decompresses Flate compressed data and applies the predictor
// from params. Streams written by some producers omit the zlib wrapper, so a
// failed zlib open is retried as raw deflate before giving up.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	decompressed, err := inflate(data)
	if err != nil {
		return nil, fmt.Errorf("flate decompression: %w", err)
	}

	if params.Predictor > 1 {
		decompressed, err = applyPredictor(decompressed, params)
		if err != nil {
			return nil, fmt.Errorf("predictor: %w", err)
		}
	}

	return decompressed, nil
}

// inflate decompresses zlib data, retrying as headerless deflate.
func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err == nil {
		defer zr.Close()
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, zr); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, fr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// applyPredictor reverses the prediction applied before compression.
// Predictor 2 is TIFF horizontal differencing; 10-15 are the PNG filters.
func applyPredictor(data []byte, params Params) ([]byte, error) {
	switch {
	case params.Predictor == 2:
		return undoTIFFPredictor(data, params)
	case params.Predictor >= 10 && params.Predictor <= 15:
		return undoPNGPredictor(data, params)
	default:
		return nil, fmt.Errorf("unsupported predictor %d", params.Predictor)
	}
}

// undoTIFFPredictor reverses TIFF Predictor 2 (each sample predicted from
// the sample to its left).
func undoTIFFPredictor(data []byte, params Params) ([]byte, error) {
	if params.BitsPerComponent != 8 {
		return nil, fmt.Errorf("TIFF predictor requires 8 bits per component, got %d", params.BitsPerComponent)
	}

	colors := max1(params.Colors)
	rowSize := max1(params.Columns) * colors
	if rowSize == 0 || len(data)%rowSize != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), rowSize)
	}

	result := make([]byte, len(data))
	for row := 0; row < len(data)/rowSize; row++ {
		base := row * rowSize
		for col := 0; col < rowSize; col++ {
			i := base + col
			if col < colors {
				result[i] = data[i]
			} else {
				result[i] = data[i] + result[i-colors]
			}
		}
	}
	return result, nil
}

// undoPNGPredictor reverses the PNG row filters. Each row carries a leading
// filter-type byte (0=None, 1=Sub, 2=Up, 3=Average, 4=Paeth).
func undoPNGPredictor(data []byte, params Params) ([]byte, error) {
	if params.BitsPerComponent != 8 {
		return nil, fmt.Errorf("PNG predictor requires 8 bits per component, got %d", params.BitsPerComponent)
	}

	bpp := max1(params.Colors)
	rowLen := max1(params.Columns) * bpp
	stride := rowLen + 1
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), stride)
	}

	rows := len(data) / stride
	result := make([]byte, rows*rowLen)

	for row := 0; row < rows; row++ {
		ft := data[row*stride]
		src := data[row*stride+1 : (row+1)*stride]
		dst := result[row*rowLen : (row+1)*rowLen]
		var prev []byte
		if row > 0 {
			prev = result[(row-1)*rowLen : row*rowLen]
		}

		for i := range src {
			var left, up, upLeft byte
			if i >= bpp {
				left = dst[i-bpp]
			}
			if prev != nil {
				up = prev[i]
				if i >= bpp {
					upLeft = prev[i-bpp]
				}
			}

			switch ft {
			case 0:
				dst[i] = src[i]
			case 1:
				dst[i] = src[i] + left
			case 2:
				dst[i] = src[i] + up
			case 3:
				dst[i] = src[i] + byte((int(left)+int(up))/2)
			case 4:
				dst[i] = src[i] + paeth(left, up, upLeft)
			default:
				return nil, fmt.Errorf("unknown PNG filter type %d in row %d", ft, row)
			}
		}
	}
	return result, nil
}

// paeth selects the neighbor closest to the linear prediction, per the PNG
// specification.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := iabs(p - int(a))
	pb := iabs(p - int(b))
	pc := iabs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func max1(x int) int {
	if x < 1 {
		return 1
	}
	return x
}

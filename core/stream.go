package core

import (
	"fmt"

	"github.com/ternpdf/tern/internal/filters"
)

// Decode decodes the stream data according to the Filter entry in the stream
// dictionary. Filter chains are applied in order. Image compression filters
// (DCTDecode, JPXDecode) are passed through unchanged: the encoded bytes are
// what the document model carries for images.
func (s *Stream) Decode() ([]byte, error) {
	filterObj := s.Dict.Get("Filter")
	if filterObj == nil {
		return s.Data, nil
	}

	paramsObj := s.Dict.Get("DecodeParms")

	if name, ok := filterObj.(Name); ok {
		return decodeWithFilter(s.Data, string(name), paramsDict(paramsObj))
	}

	if chain, ok := filterObj.(Array); ok {
		data := s.Data
		for i, f := range chain {
			name, ok := f.(Name)
			if !ok {
				return nil, fmt.Errorf("filter %d is not a name: %T", i, f)
			}

			var params Dict
			if paramsArr, ok := paramsObj.(Array); ok {
				if i < len(paramsArr) {
					params = paramsDict(paramsArr[i])
				}
			} else {
				params = paramsDict(paramsObj)
			}

			var err error
			data, err = decodeWithFilter(data, string(name), params)
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s): %w", i, name, err)
			}
		}
		return data, nil
	}

	return nil, fmt.Errorf("invalid Filter type: %T", filterObj)
}

// IsImageCoded reports whether the stream's (first) filter is an image
// compression codec whose bytes Decode passes through unchanged.
func (s *Stream) IsImageCoded() bool {
	switch f := s.Dict.Get("Filter").(type) {
	case Name:
		return f == "DCTDecode" || f == "JPXDecode"
	case Array:
		if len(f) > 0 {
			if name, ok := f[len(f)-1].(Name); ok {
				return name == "DCTDecode" || name == "JPXDecode"
			}
		}
	}
	return false
}

// decodeWithFilter applies one named filter.
func decodeWithFilter(data []byte, filterName string, params Dict) ([]byte, error) {
	switch filterName {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, filterParams(params))

	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)

	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)

	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, filterParams(params))

	case "DCTDecode", "DCT", "JPXDecode":
		// Image codecs: kept encoded.
		return data, nil

	default:
		return nil, fmt.Errorf("unsupported filter: %s", filterName)
	}
}

// paramsDict normalizes a DecodeParms entry to a Dict.
func paramsDict(obj Object) Dict {
	if d, ok := obj.(Dict); ok {
		return d
	}
	return nil
}

// filterParams converts decode parameters to the filters package form.
func filterParams(d Dict) filters.Params {
	p := filters.Params{Predictor: 1, Colors: 1, BitsPerComponent: 8, Columns: 1, K: 0}
	if d == nil {
		return p
	}
	if v, ok := d.GetInt("Predictor"); ok {
		p.Predictor = int(v)
	}
	if v, ok := d.GetInt("Colors"); ok {
		p.Colors = int(v)
	}
	if v, ok := d.GetInt("BitsPerComponent"); ok {
		p.BitsPerComponent = int(v)
	}
	if v, ok := d.GetInt("Columns"); ok {
		p.Columns = int(v)
	}
	if v, ok := d.GetInt("K"); ok {
		p.K = int(v)
	}
	if v, ok := d.GetInt("Rows"); ok {
		p.Rows = int(v)
	}
	if b, bok := d.Get("BlackIs1").(Bool); bok {
		p.BlackIs1 = bool(b)
	}
	return p
}

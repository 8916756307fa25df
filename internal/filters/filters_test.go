package filters

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"testing"
)

func defaultParams() Params {
	return Params{Predictor: 1, Colors: 1, BitsPerComponent: 8, Columns: 1}
}

func TestFlateDecodeZlib(t *testing.T) {
	want := []byte("stream content goes here")
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(want)
	zw.Close()

	got, err := FlateDecode(buf.Bytes(), defaultParams())
	if err != nil {
		t.Fatalf("FlateDecode returned error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("FlateDecode = %q, want %q", got, want)
	}
}

func TestFlateDecodeRawDeflate(t *testing.T) {
	// Some writers emit raw deflate without the zlib wrapper.
	want := []byte("raw deflate data")
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(want)
	fw.Close()

	got, err := FlateDecode(buf.Bytes(), defaultParams())
	if err != nil {
		t.Fatalf("FlateDecode returned error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("FlateDecode = %q, want %q", got, want)
	}
}

func TestFlateDecodeGarbage(t *testing.T) {
	if _, err := FlateDecode([]byte{0xDE, 0xAD, 0xBE, 0xEF}, defaultParams()); err == nil {
		t.Error("FlateDecode accepted garbage input")
	}
}

func TestFlateDecodePNGUpPredictor(t *testing.T) {
	// Two rows of four bytes, Up predictor (filter type 2): each byte
	// stores the delta against the byte above.
	raw := []byte{
		2, 10, 20, 30, 40, // row 0: above is zero, deltas are the values
		2, 1, 1, 1, 1, // row 1: each byte is previous row + 1
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(raw)
	zw.Close()

	params := Params{Predictor: 12, Colors: 1, BitsPerComponent: 8, Columns: 4}
	got, err := FlateDecode(buf.Bytes(), params)
	if err != nil {
		t.Fatalf("FlateDecode returned error: %v", err)
	}
	want := []byte{10, 20, 30, 40, 11, 21, 31, 41}
	if !bytes.Equal(got, want) {
		t.Errorf("FlateDecode = %v, want %v", got, want)
	}
}

func TestFlateDecodePNGSubPredictor(t *testing.T) {
	// Sub predictor (filter type 1): delta against the previous byte in
	// the row.
	raw := []byte{1, 5, 5, 5, 5}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write(raw)
	zw.Close()

	params := Params{Predictor: 11, Colors: 1, BitsPerComponent: 8, Columns: 4}
	got, err := FlateDecode(buf.Bytes(), params)
	if err != nil {
		t.Fatalf("FlateDecode returned error: %v", err)
	}
	want := []byte{5, 10, 15, 20}
	if !bytes.Equal(got, want) {
		t.Errorf("FlateDecode = %v, want %v", got, want)
	}
}

func TestASCIIHexDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"basic", "48656C6C6F>", "Hello"},
		{"whitespace", "48 65 6C\n6C 6F>", "Hello"},
		{"odd length pads", "484>", "H@"},
		{"lowercase", "68690a>", "hi\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ASCIIHexDecode([]byte(tt.in))
			if err != nil {
				t.Fatalf("ASCIIHexDecode returned error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ASCIIHexDecode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestASCIIHexDecodeInvalid(t *testing.T) {
	if _, err := ASCIIHexDecode([]byte("XYZ>")); err == nil {
		t.Error("ASCIIHexDecode accepted invalid digits")
	}
}

func TestASCII85Decode(t *testing.T) {
	// "Man " encodes to 9jqo^ in ascii85.
	got, err := ASCII85Decode([]byte("9jqo^~>"))
	if err != nil {
		t.Fatalf("ASCII85Decode returned error: %v", err)
	}
	if string(got) != "Man " {
		t.Errorf("ASCII85Decode = %q, want %q", got, "Man ")
	}
}

func TestASCII85DecodeZShortcut(t *testing.T) {
	got, err := ASCII85Decode([]byte("z~>"))
	if err != nil {
		t.Fatalf("ASCII85Decode returned error: %v", err)
	}
	if !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("ASCII85Decode(z) = %v, want four zero bytes", got)
	}
}

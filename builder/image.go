package builder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
)

// Image is an image XObject ready for embedding. Data holds either
// pre-encoded bytes (Filter set) or raw samples (Filter empty, left
// for the writer to compress).
type Image struct {
	Width            int
	Height           int
	ColorSpace       string
	BitsPerComponent int
	Filter           string
	Data             []byte
}

// JPEGImage wraps JPEG bytes for direct embedding with DCTDecode. The
// data is validated but not re-encoded.
func JPEGImage(data []byte) (*Image, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding jpeg header: %w", err)
	}
	cs := "DeviceRGB"
	if cfg.ColorModel == color.GrayModel || cfg.ColorModel == color.Gray16Model {
		cs = "DeviceGray"
	}
	return &Image{
		Width:            cfg.Width,
		Height:           cfg.Height,
		ColorSpace:       cs,
		BitsPerComponent: 8,
		Filter:           "DCTDecode",
		Data:             data,
	}, nil
}

// FromImage converts a decoded image to raw 8-bit RGB samples.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]byte, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			data = append(data, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return &Image{
		Width:            w,
		Height:           h,
		ColorSpace:       "DeviceRGB",
		BitsPerComponent: 8,
		Data:             data,
	}
}

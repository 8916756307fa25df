package graphicsstate

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"math"

	"github.com/ternpdf/tern/contentstream"
	"github.com/ternpdf/tern/model"
)

// Extractor extracts vector graphic elements from a page content stream.
type Extractor struct{}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the graphic elements drawn by content, in drawing order,
// converted to top-left page space. When content begins with a zlib header
// it is inflated first; inflate failures fall back to treating the bytes as
// raw operators. A content stream that parses to nothing yields nil.
func (e *Extractor) Extract(content []byte, pageWidth, pageHeight float64) []model.GraphicElement {
	// Parse keeps whatever it recognized before a malformed fragment; an
	// error here never aborts the page.
	ops, _ := contentstream.Parse(maybeInflate(content))
	if len(ops) == 0 {
		return nil
	}

	var elements []model.GraphicElement
	var points []model.Point

	for _, ev := range contentstream.Scan(ops) {
		switch ev.Type {
		case contentstream.EventPathConstruct:
			switch ev.Op {
			case "re":
				elements = append(elements, rectangleElement(ev, pageHeight))
			case "m":
				points = points[:0]
				points = append(points, ev.Point)
			case "l":
				points = append(points, ev.Point)
			}

		case contentstream.EventPathPaint:
			if el, ok := pathElement(points, ev, pageHeight); ok {
				elements = append(elements, el)
			}
			points = points[:0]
		}
	}

	return elements
}

// rectangleElement converts a rectangle operator to an element. The PDF
// operand y is the bottom edge; top-left y is pageHeight - y - height.
func rectangleElement(ev contentstream.Event, pageHeight float64) model.GraphicElement {
	x, y, w, h := ev.Rect[0], ev.Rect[1], ev.Rect[2], ev.Rect[3]
	style := model.GraphicStyle{LineWidth: ev.State.LineWidth}
	if ev.State.StrokeSet {
		style.Stroke = FormatRGB(ev.State.StrokeColor)
	}
	if ev.State.FillSet {
		style.Fill = FormatRGB(ev.State.FillColor)
	}
	return model.GraphicElement{
		Shape:    model.ShapeRectangle,
		Position: model.Rect{X: x, Y: pageHeight - y - h, Width: w, Height: h},
		Style:    style,
	}
}

// pathElement classifies accumulated points on a paint operator: two points
// make a line, more make a path. Fewer than two points paint nothing.
func pathElement(points []model.Point, ev contentstream.Event, pageHeight float64) (model.GraphicElement, bool) {
	if len(points) < 2 {
		return model.GraphicElement{}, false
	}

	converted := make([]model.Point, len(points))
	for i, p := range points {
		converted[i] = model.Point{X: p.X, Y: pageHeight - p.Y}
	}

	style := model.GraphicStyle{
		Stroke:    FormatRGB(ev.State.StrokeColor),
		LineWidth: ev.State.LineWidth,
	}
	// Stroke-only paints never carry a fill.
	if ev.Fill && ev.State.FillSet {
		style.Fill = FormatRGB(ev.State.FillColor)
	}

	shape := model.ShapeLine
	if len(converted) > 2 {
		shape = model.ShapePath
	}
	return model.GraphicElement{Shape: shape, Points: converted, Style: style}, true
}

// FormatRGB renders normalized color channels in the model's textual
// encoding with 0-255 components.
func FormatRGB(c [3]float64) string {
	return fmt.Sprintf("rgb(%d,%d,%d)",
		channel(c[0]), channel(c[1]), channel(c[2]))
}

func channel(v float64) int {
	n := int(math.Round(v * 255))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// maybeInflate inflates zlib-wrapped content, identified by the 0x78 header
// byte. Any failure returns the input unchanged.
func maybeInflate(data []byte) []byte {
	if len(data) < 2 || data[0] != 0x78 {
		return data
	}
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return data
	}
	return out
}

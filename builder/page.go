package builder

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ternpdf/tern/model"
)

// TextOptions configures a DrawText call.
type TextOptions struct {
	Font  string // base font name, defaults to Helvetica
	Size  float64
	Color [3]float64 // RGB in [0,1], defaults to black
}

// PathOptions configures rectangle and path drawing. When neither
// Stroke nor Fill is set the shape is stroked.
type PathOptions struct {
	StrokeColor [3]float64
	FillColor   [3]float64
	LineWidth   float64
	Stroke      bool
	Fill        bool
}

// LineOptions configures line drawing.
type LineOptions struct {
	StrokeColor [3]float64
	LineWidth   float64
}

// Page accumulates content stream operations in bottom-left page
// coordinates.
type Page struct {
	Width  float64
	Height float64

	content bytes.Buffer
	fonts   map[string]string // base font name -> resource name
	images  []*Image
}

// DrawText places a line of text with its baseline at (x, y).
func (p *Page) DrawText(text string, x, y float64, opts TextOptions) *Page {
	if text == "" {
		return p
	}
	fontName := opts.Font
	if fontName == "" {
		fontName = "Helvetica"
	}
	size := opts.Size
	if size <= 0 {
		size = 12
	}
	res := p.fontResource(fontName)

	p.content.WriteString("BT\n")
	if opts.Color != [3]float64{} {
		fmt.Fprintf(&p.content, "%s %s %s rg\n", num(opts.Color[0]), num(opts.Color[1]), num(opts.Color[2]))
	}
	fmt.Fprintf(&p.content, "/%s %s Tf\n", res, num(size))
	fmt.Fprintf(&p.content, "%s %s Td\n", num(x), num(y))
	fmt.Fprintf(&p.content, "(%s) Tj\n", escapeText(text))
	p.content.WriteString("ET\n")
	return p
}

// DrawRectangle draws a rectangle with its lower-left corner at (x, y).
func (p *Page) DrawRectangle(x, y, width, height float64, opts PathOptions) *Page {
	p.writePathStyle(opts)
	fmt.Fprintf(&p.content, "%s %s %s %s re\n", num(x), num(y), num(width), num(height))
	p.content.WriteString(paintOperator(opts) + "\n")
	return p
}

// DrawLine draws a straight line between two points.
func (p *Page) DrawLine(x1, y1, x2, y2 float64, opts LineOptions) *Page {
	if opts.LineWidth > 0 {
		fmt.Fprintf(&p.content, "%s w\n", num(opts.LineWidth))
	}
	fmt.Fprintf(&p.content, "%s %s %s RG\n", num(opts.StrokeColor[0]), num(opts.StrokeColor[1]), num(opts.StrokeColor[2]))
	fmt.Fprintf(&p.content, "%s %s m\n", num(x1), num(y1))
	fmt.Fprintf(&p.content, "%s %s l\n", num(x2), num(y2))
	p.content.WriteString("S\n")
	return p
}

// DrawPath draws a polyline through the given points. Fewer than two
// points is a no-op.
func (p *Page) DrawPath(points []model.Point, opts PathOptions) *Page {
	if len(points) < 2 {
		return p
	}
	p.writePathStyle(opts)
	fmt.Fprintf(&p.content, "%s %s m\n", num(points[0].X), num(points[0].Y))
	for _, pt := range points[1:] {
		fmt.Fprintf(&p.content, "%s %s l\n", num(pt.X), num(pt.Y))
	}
	p.content.WriteString(paintOperator(opts) + "\n")
	return p
}

// DrawImage places an image XObject in the rectangle with lower-left
// corner (x, y).
func (p *Page) DrawImage(img *Image, x, y, width, height float64) *Page {
	if img == nil {
		return p
	}
	p.images = append(p.images, img)
	res := fmt.Sprintf("Im%d", len(p.images))
	p.content.WriteString("q\n")
	fmt.Fprintf(&p.content, "%s 0 0 %s %s %s cm\n", num(width), num(height), num(x), num(y))
	fmt.Fprintf(&p.content, "/%s Do\n", res)
	p.content.WriteString("Q\n")
	return p
}

// Content returns the accumulated content stream bytes.
func (p *Page) Content() []byte {
	return p.content.Bytes()
}

// Fonts returns resource name to base font name pairs in stable order.
func (p *Page) Fonts() [][2]string {
	out := make([][2]string, 0, len(p.fonts))
	for base, res := range p.fonts {
		out = append(out, [2]string{res, base})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Images returns the images placed on the page, in resource order
// (Im1, Im2, ...).
func (p *Page) Images() []*Image {
	return p.images
}

func (p *Page) fontResource(base string) string {
	if res, ok := p.fonts[base]; ok {
		return res
	}
	res := fmt.Sprintf("F%d", len(p.fonts)+1)
	p.fonts[base] = res
	return res
}

func (p *Page) writePathStyle(opts PathOptions) {
	if opts.LineWidth > 0 {
		fmt.Fprintf(&p.content, "%s w\n", num(opts.LineWidth))
	}
	if opts.Stroke || !opts.Fill {
		fmt.Fprintf(&p.content, "%s %s %s RG\n", num(opts.StrokeColor[0]), num(opts.StrokeColor[1]), num(opts.StrokeColor[2]))
	}
	if opts.Fill {
		fmt.Fprintf(&p.content, "%s %s %s rg\n", num(opts.FillColor[0]), num(opts.FillColor[1]), num(opts.FillColor[2]))
	}
}

func paintOperator(opts PathOptions) string {
	switch {
	case opts.Fill && opts.Stroke:
		return "B"
	case opts.Fill:
		return "f"
	default:
		return "S"
	}
}

// num formats a coordinate with up to three decimal places, trimming
// trailing zeros so content streams stay compact.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

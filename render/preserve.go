package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/ternpdf/tern/builder"
	"github.com/ternpdf/tern/font"
	"github.com/ternpdf/tern/model"
)

const (
	// WrapMinOverflow is the minimum absolute overrun, in points,
	// before a preserved block is wrapped.
	WrapMinOverflow = 10.0
	// WrapMinRatio is the minimum overrun relative to the measured
	// width before wrapping. Both gates must pass; small overruns are
	// measurement noise and wrapping on them mangles layouts that
	// were fine in the source.
	WrapMinRatio = 0.02
	// WrappedLineFactor converts font size to the vertical pitch of
	// wrapped lines. Calibrated against common single-spaced output.
	WrappedLineFactor = 1.65
	// DefaultRightMargin is the assumed right page margin in points.
	DefaultRightMargin = 72.0

	defaultFontSize = 12.0
)

// Config controls rendering.
type Config struct {
	// RightMargin bounds the writable area on the right edge.
	RightMargin float64
	// IncludeImages and IncludeGraphics toggle non-text elements.
	IncludeImages   bool
	IncludeGraphics bool
}

// DefaultConfig returns the standard rendering configuration.
func DefaultConfig() Config {
	return Config{
		RightMargin:     DefaultRightMargin,
		IncludeImages:   true,
		IncludeGraphics: true,
	}
}

// Renderer draws model pages onto builder pages.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a renderer with the given configuration.
func NewRenderer(cfg Config) *Renderer {
	if cfg.RightMargin <= 0 {
		cfg.RightMargin = DefaultRightMargin
	}
	return &Renderer{cfg: cfg}
}

// RenderPage draws every element of pg at its recorded position.
// Degraded elements are reported as warnings, never as errors.
func (r *Renderer) RenderPage(pg *model.Page, out *builder.Page) []string {
	var warnings []string
	for _, el := range pg.Elements {
		switch e := el.(type) {
		case *model.TextBlock:
			r.renderText(pg, e, out)
		case *model.ImageElement:
			if r.cfg.IncludeImages {
				warnings = append(warnings, r.renderImage(pg, e, out)...)
			}
		case *model.GraphicElement:
			if r.cfg.IncludeGraphics {
				warnings = append(warnings, r.renderGraphic(pg, e, out)...)
			}
		}
	}
	return warnings
}

func (r *Renderer) renderText(pg *model.Page, blk *model.TextBlock, out *builder.Page) {
	text := blk.Text()
	if strings.TrimSpace(text) == "" {
		return
	}
	size := blk.Style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	face := font.Resolve(faceName(blk.Style))
	opts := builder.TextOptions{Font: face.Name(), Size: size}

	x := blk.XPosition
	avail := pg.Width - x - r.cfg.RightMargin
	measured := face.Measure(text, size)
	overflow := measured - avail

	// Wrapping needs a positive line width to wrap into; a block starting at
	// or beyond the writable width stays a single line at its recorded
	// position.
	if avail > 0 && overflow > WrapMinOverflow && overflow/measured > WrapMinRatio {
		pitch := size * WrappedLineFactor
		y := blk.YPosition
		for _, line := range WrapText(face, text, size, avail) {
			drawY := pg.Height - y - size
			if drawY >= 0 {
				out.DrawText(line, x, drawY, opts)
			}
			y += pitch
		}
		return
	}

	drawY := pg.Height - blk.YPosition - size
	if drawY >= 0 {
		out.DrawText(text, x, drawY, opts)
	}
}

// WrapText splits text into lines no wider than width using greedy
// word wrapping. A single word wider than the line is split at
// character boundaries rather than overflowing.
func WrapText(face *font.Face, text string, size, width float64) []string {
	var lines []string
	var cur string
	for _, word := range strings.Fields(text) {
		if cur == "" {
			if face.Measure(word, size) > width {
				chunks := splitWord(face, word, size, width)
				lines = append(lines, chunks[:len(chunks)-1]...)
				cur = chunks[len(chunks)-1]
				continue
			}
			cur = word
			continue
		}
		if face.Measure(cur+" "+word, size) <= width {
			cur += " " + word
			continue
		}
		lines = append(lines, cur)
		if face.Measure(word, size) > width {
			chunks := splitWord(face, word, size, width)
			lines = append(lines, chunks[:len(chunks)-1]...)
			cur = chunks[len(chunks)-1]
		} else {
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = []string{text}
	}
	return lines
}

func splitWord(face *font.Face, word string, size, width float64) []string {
	var chunks []string
	var cur []rune
	for _, r := range word {
		cur = append(cur, r)
		if face.Measure(string(cur), size) > width && len(cur) > 1 {
			chunks = append(chunks, string(cur[:len(cur)-1]))
			cur = []rune{r}
		}
	}
	chunks = append(chunks, string(cur))
	return chunks
}

func (r *Renderer) renderImage(pg *model.Page, el *model.ImageElement, out *builder.Page) []string {
	pos := el.Position
	yBottom := pg.Height - pos.Y - pos.Height

	if el.Data == "" {
		r.drawPlaceholder(el.Name, pos.X, yBottom, pos.Width, pos.Height, out)
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(el.Data)
	if err != nil {
		r.drawPlaceholder(el.Name, pos.X, yBottom, pos.Width, pos.Height, out)
		return []string{fmt.Sprintf("image %s: invalid base64 data", el.Name)}
	}
	img, err := builder.JPEGImage(raw)
	if err != nil {
		decoded, pngErr := png.Decode(bytes.NewReader(raw))
		if pngErr != nil {
			r.drawPlaceholder(el.Name, pos.X, yBottom, pos.Width, pos.Height, out)
			return []string{fmt.Sprintf("image %s: undecodable data, placeholder drawn", el.Name)}
		}
		img = builder.FromImage(decoded)
	}
	out.DrawImage(img, pos.X, yBottom, pos.Width, pos.Height)
	return nil
}

func (r *Renderer) drawPlaceholder(name string, x, y, w, h float64, out *builder.Page) {
	out.DrawRectangle(x, y, w, h, builder.PathOptions{
		StrokeColor: [3]float64{0.6, 0.6, 0.6},
		LineWidth:   1,
		Stroke:      true,
	})
	if name != "" && h > 12 {
		out.DrawText(name, x+4, y+h/2, builder.TextOptions{
			Size:  8,
			Color: [3]float64{0.6, 0.6, 0.6},
		})
	}
}

func (r *Renderer) renderGraphic(pg *model.Page, el *model.GraphicElement, out *builder.Page) []string {
	var warnings []string
	opts := builder.PathOptions{LineWidth: el.Style.LineWidth}
	if el.Style.Stroke != "" {
		c, ok := ParseRGB(el.Style.Stroke)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("graphic %s: malformed stroke color %q", el.ID, el.Style.Stroke))
		}
		opts.Stroke = true
		opts.StrokeColor = c
	}
	if el.Style.Fill != "" {
		c, ok := ParseRGB(el.Style.Fill)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("graphic %s: malformed fill color %q", el.ID, el.Style.Fill))
		}
		opts.Fill = true
		opts.FillColor = c
	}

	switch el.Shape {
	case model.ShapeRectangle:
		pos := el.Position
		out.DrawRectangle(pos.X, pg.Height-pos.Y-pos.Height, pos.Width, pos.Height, opts)
	case model.ShapeLine:
		if len(el.Points) >= 2 {
			a, b := el.Points[0], el.Points[1]
			out.DrawLine(a.X, pg.Height-a.Y, b.X, pg.Height-b.Y, builder.LineOptions{
				StrokeColor: opts.StrokeColor,
				LineWidth:   opts.LineWidth,
			})
		}
	case model.ShapePath:
		flipped := make([]model.Point, len(el.Points))
		for i, pt := range el.Points {
			flipped[i] = model.Point{X: pt.X, Y: pg.Height - pt.Y}
		}
		out.DrawPath(flipped, opts)
	}
	return warnings
}

// ParseRGB parses an "rgb(r,g,b)" color with 0-255 channels into
// normalized [0,1] components.
func ParseRGB(s string) ([3]float64, bool) {
	var r, g, b int
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
		return [3]float64{}, false
	}
	return [3]float64{clampChannel(r), clampChannel(g), clampChannel(b)}, true
}

func clampChannel(v int) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 1
	}
	return float64(v) / 255.0
}

func faceName(style model.TextStyle) string {
	bold := style.FontWeight == "bold"
	italic := style.FontStyle == "italic"
	switch {
	case bold && italic:
		return "Helvetica-BoldOblique"
	case bold:
		return "Helvetica-Bold"
	case italic:
		return "Helvetica-Oblique"
	}
	return "Helvetica"
}

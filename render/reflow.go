package render

import (
	"strings"

	"github.com/ternpdf/tern/builder"
	"github.com/ternpdf/tern/font"
	"github.com/ternpdf/tern/model"
)

// estCharWidthFactor approximates average glyph width as a fraction
// of the font size when no measurer is configured.
const estCharWidthFactor = 0.6

// Word is a measured word positioned within a line.
type Word struct {
	Text  string
	X     float64
	Width float64
}

// Line is a row of words sharing a baseline.
type Line struct {
	Words  []Word
	Y      float64
	Height float64
}

// BlockLayout is the laid-out form of one text block.
type BlockLayout struct {
	Block *model.TextBlock
	Lines []Line
}

// Result is a completed reflow layout.
type Result struct {
	Blocks []BlockLayout
	// Height is the total content height consumed from the top of
	// the container.
	Height float64
	// Overflow reports that the content ran past the page.
	Overflow bool
}

// Engine lays text out as a word-wrapped flow inside a container,
// ignoring recorded positions. Measure may be nil, in which case word
// widths are estimated from character counts.
type Engine struct {
	Measure func(text string, size float64) float64
}

// NewEngine returns an engine measuring with the standard font
// metrics.
func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) measure(text string, size float64) float64 {
	if e.Measure != nil {
		return e.Measure(text, size)
	}
	return float64(len(text)) * size * estCharWidthFactor
}

// Layout flows the container's blocks top to bottom. Lines and words
// carry offsets relative to the page, not the container.
func (e *Engine) Layout(c *model.Container, pageHeight float64) *Result {
	res := &Result{}
	if c == nil || len(c.Blocks) == 0 {
		return res
	}
	innerX := c.Bounds.X + c.Padding
	innerWidth := c.Bounds.Width - 2*c.Padding
	y := c.Bounds.Y + c.Padding

	for _, blk := range c.Blocks {
		text := blk.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		size := blk.Style.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		lineHeight := size * blk.Style.LineHeight
		if blk.Style.LineHeight <= 0 {
			lineHeight = size * 1.2
		}
		y += blk.Style.MarginTop

		bl := BlockLayout{Block: blk}
		lineWidth := innerWidth - blk.Style.MarginLeft
		if lineWidth <= 0 {
			lineWidth = innerWidth
		}
		startX := innerX + blk.Style.MarginLeft

		spaceW := e.measure(" ", size)
		line := Line{Y: y, Height: lineHeight}
		x := startX
		for _, word := range strings.Fields(text) {
			w := e.measure(word, size)
			if len(line.Words) > 0 && x+spaceW+w > startX+lineWidth {
				bl.Lines = append(bl.Lines, line)
				y += lineHeight
				line = Line{Y: y, Height: lineHeight}
				x = startX
			}
			if len(line.Words) > 0 {
				x += spaceW
			}
			line.Words = append(line.Words, Word{Text: word, X: x, Width: w})
			x += w
		}
		if len(line.Words) > 0 {
			bl.Lines = append(bl.Lines, line)
			y += lineHeight
		}
		y += blk.Style.MarginBottom
		res.Blocks = append(res.Blocks, bl)
	}

	res.Height = y - c.Bounds.Y
	res.Overflow = y > pageHeight
	return res
}

// RenderReflowPage reflows the page's containers and draws the result.
// Images and graphics keep their recorded positions.
func (r *Renderer) RenderReflowPage(pg *model.Page, out *builder.Page) []string {
	var warnings []string
	for _, el := range pg.Elements {
		switch e := el.(type) {
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

	engine := NewEngine()
	engine.Measure = font.Resolve("Helvetica").Measure
	for i := range pg.Containers {
		c := &pg.Containers[i]
		res := engine.Layout(c, pg.Height)
		if res.Overflow {
			warnings = append(warnings, "reflowed content exceeds page height, trailing lines clipped")
		}
		for _, bl := range res.Blocks {
			size := bl.Block.Style.FontSize
			if size <= 0 {
				size = defaultFontSize
			}
			face := font.Resolve(faceName(bl.Block.Style))
			opts := builder.TextOptions{Font: face.Name(), Size: size}
			for _, line := range bl.Lines {
				drawY := pg.Height - line.Y - size
				if drawY < 0 {
					continue
				}
				for _, word := range line.Words {
					out.DrawText(word.Text, word.X, drawY, opts)
				}
			}
		}
	}
	return warnings
}

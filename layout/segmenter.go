package layout

import (
	"sort"
	"strings"

	"github.com/ternpdf/tern/model"
)

// Tuned segmentation thresholds. These are calibrated policy; see the
// package comment before changing them.
const (
	// SameLineTolerance is the vertical distance within which two runs
	// count as the same visual line.
	SameLineTolerance = 3.0

	// ColumnBreakGap is the horizontal gap beyond which same-line runs are
	// split into separate blocks.
	ColumnBreakGap = 50.0

	// FontSizeJump is the font size change that forces a new block.
	FontSizeJump = 2.0

	// AlignTolerance is the horizontal tolerance used when the grouper
	// re-merges blocks that share a left edge.
	AlignTolerance = 5.0
)

// GlyphRun is one positioned text span from the external text-extraction
// collaborator. Coordinates are top-left page space; Height doubles as the
// font size. Width may be zero, in which case it is estimated from the text
// length.
type GlyphRun struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height"`
	FontName string  `json:"fontName,omitempty"`
}

// fontSize returns the run's effective font size.
func (r GlyphRun) fontSize() float64 { return r.Height }

// end returns the x coordinate where the run ends, estimating the width
// from the text length when none was supplied.
func (r GlyphRun) end() float64 {
	w := r.Width
	if w == 0 {
		w = float64(len(r.Text)) * r.Height * estCharWidthFactor
	}
	return r.X + w
}

// estCharWidthFactor estimates average glyph width as a fraction of the
// font size when no measured width is available.
const estCharWidthFactor = 0.6

// SegmenterConfig holds the segmentation thresholds.
type SegmenterConfig struct {
	// SameLineTolerance is the y distance for same-line grouping.
	SameLineTolerance float64

	// ColumnBreakGap is the same-line horizontal gap that starts a new block.
	ColumnBreakGap float64

	// FontSizeJump is the size change that starts a new block.
	FontSizeJump float64

	// HeadingMinSize is the font size at which a short block becomes a
	// heading even without a bold face.
	HeadingMinSize float64

	// HeadingMaxLength is the maximum text length for a heading.
	HeadingMaxLength int
}

// DefaultSegmenterConfig returns the tuned defaults.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		SameLineTolerance: SameLineTolerance,
		ColumnBreakGap:    ColumnBreakGap,
		FontSizeJump:      FontSizeJump,
		HeadingMinSize:    16,
		HeadingMaxLength:  100,
	}
}

// Segmenter groups glyph runs into per-line text blocks.
type Segmenter struct {
	config SegmenterConfig
}

// NewSegmenter creates a segmenter with default configuration.
func NewSegmenter() *Segmenter {
	return NewSegmenterWithConfig(DefaultSegmenterConfig())
}

// NewSegmenterWithConfig creates a segmenter with custom thresholds.
func NewSegmenterWithConfig(config SegmenterConfig) *Segmenter {
	return &Segmenter{config: config}
}

// Segment groups runs into text blocks. Runs are sorted by y (within the
// same-line tolerance) then x; a new block starts on a vertical gap larger
// than half the font size, a font change, or a same-line column gap.
func (s *Segmenter) Segment(runs []GlyphRun) []*model.TextBlock {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]GlyphRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if diff := sorted[i].Y - sorted[j].Y; diff > s.config.SameLineTolerance || diff < -s.config.SameLineTolerance {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var blocks []*model.TextBlock
	var current []GlyphRun

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, s.buildBlock(current))
			current = nil
		}
	}

	for _, run := range sorted {
		if strings.TrimSpace(run.Text) == "" {
			continue
		}
		if len(current) == 0 {
			current = append(current, run)
			continue
		}

		prev := current[len(current)-1]
		sameLine := abs(run.Y-prev.Y) <= s.config.SameLineTolerance

		switch {
		case !sameLine && run.Y-prev.Y > run.fontSize()/2:
			// Vertical gap beyond half the font size.
			flush()
		case abs(run.fontSize()-prev.fontSize()) > s.config.FontSizeJump || run.FontName != prev.FontName:
			// Style discontinuity.
			flush()
		case sameLine && run.X-prev.end() > s.config.ColumnBreakGap:
			// Column break.
			flush()
		}

		current = append(current, run)
	}
	flush()

	return blocks
}

// buildBlock assembles one text block from the runs of a visual line.
func (s *Segmenter) buildBlock(runs []GlyphRun) *model.TextBlock {
	first := runs[0]
	fontSize := first.fontSize()
	bold := isBoldFont(first.FontName)
	italic := isItalicFont(first.FontName)

	// Adjacent runs merge into one span; a visible gap starts a new span so
	// the joined text keeps its word boundary.
	var spans []model.Span
	for i, run := range runs {
		if i > 0 {
			prev := runs[i-1]
			if run.X-prev.end() <= 1.0 {
				spans[len(spans)-1].Text += run.Text
				continue
			}
		}
		spans = append(spans, model.Span{Text: run.Text})
	}

	joined := joinSpans(spans)
	kind := model.BlockParagraph
	if (fontSize >= s.config.HeadingMinSize || bold) && len(joined) < s.config.HeadingMaxLength {
		kind = model.BlockHeading
	}

	style := model.TextStyle{
		FontSize:   fontSize,
		MarginLeft: first.X,
	}
	if bold {
		style.FontWeight = "bold"
	}
	if italic {
		style.FontStyle = "italic"
	}
	if kind == model.BlockHeading {
		style.MarginTop = 20
		style.LineHeight = 1.3
	} else {
		style.MarginBottom = 12
		style.LineHeight = 1.5
	}

	return &model.TextBlock{
		Kind:      kind,
		Content:   spans,
		XPosition: first.X,
		YPosition: first.Y,
		Style:     style,
	}
}

// isBoldFont reports whether a font name denotes a bold face.
func isBoldFont(name string) bool {
	return strings.Contains(strings.ToLower(name), "bold")
}

// isItalicFont reports whether a font name denotes an italic or oblique face.
func isItalicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}

func joinSpans(spans []model.Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = s.Text
	}
	return strings.Join(parts, " ")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

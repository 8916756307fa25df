package layout

import (
	"testing"

	"github.com/ternpdf/tern/model"
)

// makeRun creates a glyph run for segmentation tests.
func makeRun(text string, x, y, h float64, fontName string) GlyphRun {
	return GlyphRun{Text: text, X: x, Y: y, Height: h, FontName: fontName}
}

func TestNewSegmenter(t *testing.T) {
	s := NewSegmenter()
	if s == nil {
		t.Fatal("NewSegmenter returned nil")
	}
	if s.config.SameLineTolerance != SameLineTolerance {
		t.Errorf("SameLineTolerance = %v, want %v", s.config.SameLineTolerance, SameLineTolerance)
	}
}

func TestDefaultSegmenterConfig(t *testing.T) {
	config := DefaultSegmenterConfig()
	if config.ColumnBreakGap != 50 {
		t.Errorf("ColumnBreakGap = %v, want 50", config.ColumnBreakGap)
	}
	if config.FontSizeJump != 2 {
		t.Errorf("FontSizeJump = %v, want 2", config.FontSizeJump)
	}
	if config.HeadingMinSize != 16 {
		t.Errorf("HeadingMinSize = %v, want 16", config.HeadingMinSize)
	}
	if config.HeadingMaxLength != 100 {
		t.Errorf("HeadingMaxLength = %v, want 100", config.HeadingMaxLength)
	}
}

func TestSegmentEmpty(t *testing.T) {
	if got := NewSegmenter().Segment(nil); got != nil {
		t.Errorf("Segment(nil) = %v, want nil", got)
	}
}

func TestSegmentSameLineMerge(t *testing.T) {
	runs := []GlyphRun{
		makeRun("Hello", 72, 100, 12, "Helvetica"),
		makeRun("world", 110, 101.5, 12, "Helvetica"),
	}
	blocks := NewSegmenter().Segment(runs)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if got := blocks[0].Text(); got != "Hello world" {
		t.Errorf("Text() = %q, want %q", got, "Hello world")
	}
}

func TestSegmentVerticalGapSplits(t *testing.T) {
	runs := []GlyphRun{
		makeRun("First line", 72, 100, 12, "Helvetica"),
		// 12-point font, gap of 20 > fontSize/2.
		makeRun("Second line", 72, 120, 12, "Helvetica"),
	}
	blocks := NewSegmenter().Segment(runs)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
}

func TestSegmentFontSizeJumpSplits(t *testing.T) {
	runs := []GlyphRun{
		makeRun("Title", 72, 100, 18, "Helvetica"),
		makeRun("body", 120, 101, 11, "Helvetica"),
	}
	blocks := NewSegmenter().Segment(runs)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
}

func TestSegmentFontNameChangeSplits(t *testing.T) {
	runs := []GlyphRun{
		makeRun("plain", 72, 100, 12, "Helvetica"),
		makeRun("bold", 115, 100, 12, "Helvetica-Bold"),
	}
	blocks := NewSegmenter().Segment(runs)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
}

func TestSegmentColumnBreak(t *testing.T) {
	left := GlyphRun{Text: "left column", X: 72, Y: 100, Width: 80, Height: 12}
	right := GlyphRun{Text: "right column", X: 300, Y: 100, Width: 80, Height: 12}
	blocks := NewSegmenter().Segment([]GlyphRun{left, right})
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].XPosition != 72 || blocks[1].XPosition != 300 {
		t.Errorf("block positions = %v, %v; want 72, 300", blocks[0].XPosition, blocks[1].XPosition)
	}
}

func TestSegmentSmallGapSameLineStays(t *testing.T) {
	a := GlyphRun{Text: "two", X: 72, Y: 100, Width: 30, Height: 12}
	b := GlyphRun{Text: "words", X: 120, Y: 100, Width: 40, Height: 12}
	blocks := NewSegmenter().Segment([]GlyphRun{a, b})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
}

func TestSegmentSkipsWhitespaceRuns(t *testing.T) {
	runs := []GlyphRun{
		makeRun("   ", 10, 100, 12, "Helvetica"),
		makeRun("text", 72, 100, 12, "Helvetica"),
	}
	blocks := NewSegmenter().Segment(runs)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if got := blocks[0].Text(); got != "text" {
		t.Errorf("Text() = %q, want %q", got, "text")
	}
}

func TestSegmentSortsOutOfOrderRuns(t *testing.T) {
	runs := []GlyphRun{
		makeRun("second", 72, 200, 12, "Helvetica"),
		makeRun("first", 72, 100, 12, "Helvetica"),
	}
	blocks := NewSegmenter().Segment(runs)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Text() != "first" || blocks[1].Text() != "second" {
		t.Errorf("blocks out of order: %q, %q", blocks[0].Text(), blocks[1].Text())
	}
}

func TestSegmentHeadingClassification(t *testing.T) {
	tests := []struct {
		name     string
		run      GlyphRun
		wantKind model.BlockKind
	}{
		{"large font", makeRun("Chapter One", 72, 80, 18, "Helvetica"), model.BlockHeading},
		{"bold font normal size", makeRun("Summary", 72, 80, 12, "Helvetica-Bold"), model.BlockHeading},
		{"body text", makeRun("Plain body text.", 72, 80, 11, "Helvetica"), model.BlockParagraph},
		{
			"large font but too long",
			makeRun(
				"This line is set in a large face but runs far past the maximum heading length, well over one hundred characters in total, so it stays a paragraph.",
				72, 80, 18, "Helvetica"),
			model.BlockParagraph,
		},
	}

	s := NewSegmenter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := s.Segment([]GlyphRun{tt.run})
			if len(blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(blocks))
			}
			if blocks[0].Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", blocks[0].Kind, tt.wantKind)
			}
		})
	}
}

func TestSegmentHeadingStyle(t *testing.T) {
	blocks := NewSegmenter().Segment([]GlyphRun{makeRun("Intro", 72, 80, 18, "Helvetica")})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	style := blocks[0].Style
	if style.MarginTop != 20 {
		t.Errorf("MarginTop = %v, want 20", style.MarginTop)
	}
	if style.LineHeight != 1.3 {
		t.Errorf("LineHeight = %v, want 1.3", style.LineHeight)
	}
	if style.MarginBottom != 0 {
		t.Errorf("MarginBottom = %v, want 0", style.MarginBottom)
	}
}

func TestSegmentParagraphStyle(t *testing.T) {
	blocks := NewSegmenter().Segment([]GlyphRun{makeRun("Body text here.", 90, 200, 11, "Helvetica")})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	style := blocks[0].Style
	if style.MarginBottom != 12 {
		t.Errorf("MarginBottom = %v, want 12", style.MarginBottom)
	}
	if style.LineHeight != 1.5 {
		t.Errorf("LineHeight = %v, want 1.5", style.LineHeight)
	}
	if style.MarginLeft != 90 {
		t.Errorf("MarginLeft = %v, want 90", style.MarginLeft)
	}
	if blocks[0].XPosition != 90 || blocks[0].YPosition != 200 {
		t.Errorf("position = (%v, %v), want (90, 200)", blocks[0].XPosition, blocks[0].YPosition)
	}
}

func TestSegmentBoldItalicStyle(t *testing.T) {
	blocks := NewSegmenter().Segment([]GlyphRun{makeRun("Note", 72, 80, 12, "Times-BoldItalic")})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Style.FontWeight != "bold" {
		t.Errorf("FontWeight = %q, want bold", blocks[0].Style.FontWeight)
	}
	if blocks[0].Style.FontStyle != "italic" {
		t.Errorf("FontStyle = %q, want italic", blocks[0].Style.FontStyle)
	}
}

func TestSegmentAdjacentRunsMergeSpans(t *testing.T) {
	// Runs touching end-to-start merge into one span.
	a := GlyphRun{Text: "Hel", X: 72, Y: 100, Width: 20, Height: 12}
	b := GlyphRun{Text: "lo", X: 92.5, Y: 100, Width: 14, Height: 12}
	blocks := NewSegmenter().Segment([]GlyphRun{a, b})
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if len(blocks[0].Content) != 1 {
		t.Fatalf("got %d spans, want 1", len(blocks[0].Content))
	}
	if got := blocks[0].Text(); got != "Hello" {
		t.Errorf("Text() = %q, want %q", got, "Hello")
	}
}

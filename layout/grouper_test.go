package layout

import (
	"testing"

	"github.com/ternpdf/tern/model"
)

// makeLine creates a single-line paragraph block as the segmenter
// would produce it.
func makeLine(text string, x, y, fontSize float64) *model.TextBlock {
	return &model.TextBlock{
		Kind:      model.BlockParagraph,
		Content:   []model.Span{{Text: text}},
		XPosition: x,
		YPosition: y,
		Style: model.TextStyle{
			FontSize:     fontSize,
			LineHeight:   1.5,
			MarginBottom: 12,
			MarginLeft:   x,
		},
	}
}

func TestGroupEmpty(t *testing.T) {
	if got := NewGrouper().Group(nil); got != nil {
		t.Errorf("Group(nil) = %v, want nil", got)
	}
}

func TestGroupMergesAlignedLines(t *testing.T) {
	// Three lines, 18-point pitch on a 12-point font: under the
	// 2 x (12 x 1.5) = 36 limit.
	blocks := []*model.TextBlock{
		makeLine("The first line of a", 72, 100, 12),
		makeLine("paragraph continues", 72, 118, 12),
		makeLine("across three lines.", 72, 136, 12),
	}
	got := NewGrouper().Group(blocks)
	if len(got) != 1 {
		t.Fatalf("got %d blocks, want 1", len(got))
	}
	want := "The first line of a paragraph continues across three lines."
	if got[0].Text() != want {
		t.Errorf("Text() = %q, want %q", got[0].Text(), want)
	}
	if got[0].YPosition != 100 {
		t.Errorf("YPosition = %v, want 100 (first line)", got[0].YPosition)
	}
}

func TestGroupSplitsOnMisalignment(t *testing.T) {
	blocks := []*model.TextBlock{
		makeLine("left paragraph", 72, 100, 12),
		makeLine("indented quote", 108, 118, 12),
	}
	got := NewGrouper().Group(blocks)
	if len(got) != 2 {
		t.Fatalf("got %d blocks, want 2", len(got))
	}
}

func TestGroupToleratesSmallMisalignment(t *testing.T) {
	blocks := []*model.TextBlock{
		makeLine("slightly", 72, 100, 12),
		makeLine("jittered", 75, 118, 12),
	}
	got := NewGrouper().Group(blocks)
	if len(got) != 1 {
		t.Fatalf("got %d blocks, want 1", len(got))
	}
}

func TestGroupSplitsOnLargeAdvance(t *testing.T) {
	// 40-point advance exceeds 2 x (12 x 1.5) = 36.
	blocks := []*model.TextBlock{
		makeLine("first paragraph", 72, 100, 12),
		makeLine("second paragraph", 72, 140, 12),
	}
	got := NewGrouper().Group(blocks)
	if len(got) != 2 {
		t.Fatalf("got %d blocks, want 2", len(got))
	}
}

func TestGroupSplitsOnUpwardMovement(t *testing.T) {
	// Zero or negative advance never merges; column layouts revisit
	// earlier y positions.
	blocks := []*model.TextBlock{
		makeLine("bottom of column one", 72, 700, 12),
		makeLine("top of column two", 72, 100, 12),
	}
	got := NewGrouper().Group(blocks)
	if len(got) != 2 {
		t.Fatalf("got %d blocks, want 2", len(got))
	}
}

func TestGroupSplitsOnKindChange(t *testing.T) {
	heading := makeLine("Heading", 72, 100, 12)
	heading.Kind = model.BlockHeading
	blocks := []*model.TextBlock{
		heading,
		makeLine("body text", 72, 118, 12),
	}
	got := NewGrouper().Group(blocks)
	if len(got) != 2 {
		t.Fatalf("got %d blocks, want 2", len(got))
	}
}

func TestGroupAdvanceMeasuredFromLastLine(t *testing.T) {
	// The merge window moves with each merged line: 100 -> 118 -> 136
	// all merge, then 154 still merges against 136, not against 100.
	blocks := []*model.TextBlock{
		makeLine("one", 72, 100, 12),
		makeLine("two", 72, 118, 12),
		makeLine("three", 72, 136, 12),
		makeLine("four", 72, 154, 12),
	}
	got := NewGrouper().Group(blocks)
	if len(got) != 1 {
		t.Fatalf("got %d blocks, want 1", len(got))
	}
	if got[0].Text() != "one two three four" {
		t.Errorf("Text() = %q, want %q", got[0].Text(), "one two three four")
	}
}

func TestGroupDoesNotMutateInput(t *testing.T) {
	blocks := []*model.TextBlock{
		makeLine("first", 72, 100, 12),
		makeLine("second", 72, 118, 12),
	}
	NewGrouper().Group(blocks)
	if len(blocks[0].Content) != 1 {
		t.Errorf("input block gained spans: %d", len(blocks[0].Content))
	}
}

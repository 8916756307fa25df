package layout

import "github.com/ternpdf/tern/model"

// Grouper merges consecutive single-line text blocks back into paragraph
// units before rendering. It inverts the segmenter's one-block-per-line
// policy: the renderer needs whole paragraphs to decide whether wrapping is
// required.
type Grouper struct {
	// AlignTolerance is the left-edge distance within which blocks are
	// considered part of the same paragraph.
	AlignTolerance float64
}

// NewGrouper creates a grouper with the tuned alignment tolerance.
func NewGrouper() *Grouper {
	return &Grouper{AlignTolerance: AlignTolerance}
}

// Group merges blocks in order. A block joins the accumulating paragraph
// when its left edge matches within the tolerance and its y advance over
// the accumulator's last line is positive but under twice the paragraph
// line pitch (fontSize x 1.5). Merged content is joined with a space.
func (g *Grouper) Group(blocks []*model.TextBlock) []*model.TextBlock {
	if len(blocks) == 0 {
		return nil
	}

	var result []*model.TextBlock
	var acc *model.TextBlock
	var lastY float64

	flush := func() {
		if acc != nil {
			result = append(result, acc)
			acc = nil
		}
	}

	for _, block := range blocks {
		if acc != nil && g.belongsTo(acc, lastY, block) {
			acc.Content = append(acc.Content, block.Content...)
			lastY = block.YPosition
			continue
		}
		flush()
		clone := *block
		clone.Content = append([]model.Span(nil), block.Content...)
		acc = &clone
		lastY = block.YPosition
	}
	flush()

	return result
}

// belongsTo applies the merge rule against the accumulating paragraph.
func (g *Grouper) belongsTo(acc *model.TextBlock, lastY float64, block *model.TextBlock) bool {
	if block.Kind != acc.Kind {
		return false
	}
	if abs(block.XPosition-acc.XPosition) >= g.AlignTolerance {
		return false
	}
	advance := block.YPosition - lastY
	maxAdvance := 2 * (acc.Style.FontSize * 1.5)
	return advance > 0 && advance < maxAdvance
}

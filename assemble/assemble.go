package assemble

import (
	"fmt"

	"github.com/ternpdf/tern/model"
)

// Assembler builds pages and issues element IDs. IDs are opaque tokens,
// unique for the lifetime of the assembler and never reused.
type Assembler struct {
	nextID int
}

// NewAssembler creates an assembler with a fresh ID sequence.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// issueID returns the next opaque element ID for the given kind.
func (a *Assembler) issueID(kind string) string {
	a.nextID++
	return fmt.Sprintf("%s-%d", kind, a.nextID)
}

// Page merges element lists into one ordered page. Elements receive IDs
// here; the result's elements are sorted by vertical position, preserving
// input order at equal heights. The page also carries one full-page
// container wrapping the same text blocks for reflow consumers.
func (a *Assembler) Page(width, height float64, texts []*model.TextBlock, images []model.ImageElement, graphics []model.GraphicElement) *model.Page {
	page := &model.Page{Width: width, Height: height}

	for _, tb := range texts {
		tb.ID = a.issueID("text")
		page.Elements = append(page.Elements, tb)
	}
	for i := range images {
		img := images[i]
		img.ID = a.issueID("image")
		page.Elements = append(page.Elements, &img)
	}
	for i := range graphics {
		gr := graphics[i]
		gr.ID = a.issueID("graphic")
		page.Elements = append(page.Elements, &gr)
	}

	page.SortElements()

	if len(texts) > 0 {
		page.Containers = []model.Container{{
			Bounds: model.Rect{Width: width, Height: height},
			Blocks: texts,
		}}
	}

	return page
}

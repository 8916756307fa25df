package tern

import (
	"fmt"

	"github.com/ternpdf/tern/builder"
	"github.com/ternpdf/tern/layout"
	"github.com/ternpdf/tern/model"
	"github.com/ternpdf/tern/render"
	"github.com/ternpdf/tern/writer"
)

// Export renders the document model to PDF bytes. In preserve mode
// consecutive single-line blocks are grouped into paragraphs and drawn
// at their recorded positions; in reflow mode text flows through the
// page containers instead. Degraded elements are reported as warnings.
func Export(doc *model.Document, opts ...ExportOption) ([]byte, []Warning, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, nil, fmt.Errorf("document has no pages")
	}
	o := defaultExportOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := builder.New()
	b.SetInfo(builder.Info{
		Title:    doc.Metadata.Title,
		Author:   doc.Metadata.Author,
		Producer: "tern",
	})

	grouper := layout.NewGrouper()
	rend := render.NewRenderer(render.Config{
		RightMargin:     o.rightMargin,
		IncludeImages:   o.includeImages,
		IncludeGraphics: o.includeGraphics,
	})

	var warnings []Warning
	for i, pg := range doc.Pages {
		out := b.NewPage(pg.Width, pg.Height)

		var msgs []string
		if doc.Metadata.Mode == model.ModeReflow {
			msgs = rend.RenderReflowPage(pg, out)
		} else {
			msgs = rend.RenderPage(groupedPage(pg, grouper), out)
		}
		for _, msg := range msgs {
			warnings = append(warnings, Warning{Page: i + 1, Component: "render", Message: msg})
		}
	}

	data, err := writer.Write(b)
	if err != nil {
		return nil, warnings, fmt.Errorf("serializing document: %w", err)
	}
	return data, warnings, nil
}

// groupedPage returns a copy of pg with its text blocks merged into
// paragraphs. Non-text elements carry over unchanged.
func groupedPage(pg *model.Page, grouper *layout.Grouper) *model.Page {
	out := &model.Page{
		Width:      pg.Width,
		Height:     pg.Height,
		Containers: pg.Containers,
	}
	for _, el := range pg.Elements {
		if _, ok := el.(*model.TextBlock); ok {
			continue
		}
		out.Elements = append(out.Elements, el)
	}
	for _, blk := range grouper.Group(pg.TextBlocks()) {
		out.Elements = append(out.Elements, blk)
	}
	out.SortElements()
	return out
}

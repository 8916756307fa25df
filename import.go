package tern

import (
	"fmt"
	"time"

	"github.com/ternpdf/tern/assemble"
	"github.com/ternpdf/tern/contentstream"
	"github.com/ternpdf/tern/core"
	"github.com/ternpdf/tern/graphicsstate"
	"github.com/ternpdf/tern/layout"
	"github.com/ternpdf/tern/model"
	"github.com/ternpdf/tern/reader"
)

// Import converts PDF bytes into an editable document model. text
// supplies pre-extracted glyph runs, one slice per page; pages beyond
// len(text) import with no text content. Per-page degradation (missing
// content streams, unreadable images) is reported through warnings;
// an error is returned only when the file yields no usable content.
func Import(data []byte, text [][]layout.GlyphRun, opts ...ImportOption) (*model.Document, []Warning, error) {
	o := defaultImportOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r, err := reader.NewReader(data)
	if err != nil {
		return nil, nil, fmt.Errorf("opening document: %w", err)
	}
	pages, err := r.Pages()
	if err != nil {
		return nil, nil, fmt.Errorf("reading page tree: %w", err)
	}
	if len(pages) == 0 {
		return nil, nil, fmt.Errorf("document has no pages")
	}

	var warnings []Warning
	doc := model.NewDocument(newDocumentID())
	doc.Metadata.Mode = o.mode
	doc.Metadata.Source = "pdf"
	warnings = append(warnings, applyInfo(r, doc)...)
	if o.title != "" {
		doc.Metadata.Title = o.title
	}
	if o.author != "" {
		doc.Metadata.Author = o.author
	}

	seg := layout.NewSegmenter()
	vec := graphicsstate.NewExtractor()
	asm := assemble.NewAssembler()

	hasContent := false
	for i, pg := range pages {
		pageNum := i + 1

		content, err := pg.Content()
		if err != nil {
			warnings = append(warnings, Warning{Page: pageNum, Component: "content", Message: err.Error()})
		}

		var texts []*model.TextBlock
		if i < len(text) {
			texts = seg.Segment(text[i])
		}

		ops, _ := contentstream.Parse(content)
		placements := contentstream.ResolvePlacements(ops, pg.Height)
		images, imgWarnings := reader.ExtractImages(pg, placements)
		for _, msg := range imgWarnings {
			warnings = append(warnings, Warning{Page: pageNum, Component: "images", Message: msg})
		}

		graphics := vec.Extract(content, pg.Width, pg.Height)

		page := asm.Page(pg.Width, pg.Height, texts, images, graphics)
		if len(page.Elements) > 0 {
			hasContent = true
		}
		doc.AddPage(page)
	}

	if !hasContent {
		return nil, warnings, fmt.Errorf("no content found in any page")
	}
	return doc, warnings, nil
}

func applyInfo(r *reader.Reader, doc *model.Document) []Warning {
	info, err := r.Info()
	if err != nil {
		return []Warning{{Component: "metadata", Message: err.Error()}}
	}
	if info == nil {
		return nil
	}
	if title, ok := info.GetString("Title"); ok {
		doc.Metadata.Title = core.DecodeTextString(title)
	}
	if author, ok := info.GetString("Author"); ok {
		doc.Metadata.Author = core.DecodeTextString(author)
	}
	return nil
}

func newDocumentID() string {
	return fmt.Sprintf("doc-%d", time.Now().UnixNano())
}

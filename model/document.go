package model

import "time"

// Mode selects the export strategy for a document.
type Mode string

const (
	// ModePreserve reproduces absolute element positions.
	ModePreserve Mode = "preserve"
	// ModeReflow lays text out by width-based word wrap, ignoring original
	// positions.
	ModeReflow Mode = "reflow"
)

// Metadata carries document-level information.
type Metadata struct {
	Title     string    `json:"title,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Source    string    `json:"source,omitempty"`
	Mode      Mode      `json:"mode"`
}

// Document is the root of the editable model: ordered pages plus metadata.
type Document struct {
	ID       string   `json:"id"`
	Pages    []*Page  `json:"pages"`
	Metadata Metadata `json:"metadata"`
}

// NewDocument creates an empty document in preserve mode.
func NewDocument(id string) *Document {
	return &Document{
		ID: id,
		Metadata: Metadata{
			CreatedAt: time.Now().UTC(),
			Mode:      ModePreserve,
		},
	}
}

// AddPage appends a page.
func (d *Document) AddPage(page *Page) {
	d.Pages = append(d.Pages, page)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

// PlainText returns the document's text content, blocks separated by
// newlines. Useful for fidelity checks after round trips.
func (d *Document) PlainText() string {
	var out []byte
	for _, page := range d.Pages {
		for _, block := range page.TextBlocks() {
			out = append(out, block.Text()...)
			out = append(out, '\n')
		}
	}
	return string(out)
}

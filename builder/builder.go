package builder

// Info carries document information dictionary entries. Empty fields
// are omitted from the output.
type Info struct {
	Title    string
	Author   string
	Creator  string
	Producer string
}

// Document accumulates pages and shared state for serialization.
type Document struct {
	pages []*Page
	info  Info
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// NewPage appends a page of the given size in points and returns it
// for drawing.
func (d *Document) NewPage(width, height float64) *Page {
	p := &Page{
		Width:  width,
		Height: height,
		fonts:  make(map[string]string),
	}
	d.pages = append(d.pages, p)
	return p
}

// SetInfo sets the document information dictionary entries.
func (d *Document) SetInfo(info Info) {
	d.info = info
}

// Info returns the document information entries.
func (d *Document) Info() Info {
	return d.info
}

// Pages returns the pages in insertion order.
func (d *Document) Pages() []*Page {
	return d.pages
}

package reader

import (
	"fmt"

	"github.com/ternpdf/tern/core"
)

// Letter-size defaults for pages with no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Page is one resolved page of the document.
type Page struct {
	Width     float64
	Height    float64
	Resources core.Dict

	dict core.Dict
	r    *Reader
}

// inherited carries page-tree attributes passed down from parent
// nodes.
type inherited struct {
	resources core.Dict
	mediaBox  core.Array
}

// Pages walks the page tree and returns all pages in document order.
// Resources and MediaBox inherit from parent nodes per the page-tree
// model.
func (r *Reader) Pages() ([]*Page, error) {
	catalog, err := r.Catalog()
	if err != nil {
		return nil, err
	}
	rootObj, err := r.Resolve(catalog.Get("Pages"))
	if err != nil {
		return nil, fmt.Errorf("resolving page tree root: %w", err)
	}
	root, ok := rootObj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("page tree root is %T, want dictionary", rootObj)
	}

	var out []*Page
	if err := r.walkPages(root, inherited{}, &out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Reader) walkPages(node core.Dict, inh inherited, out *[]*Page, depth int) error {
	if depth > 50 {
		return fmt.Errorf("page tree deeper than 50 levels")
	}

	if res, ok := node.GetDict("Resources"); ok {
		inh.resources = res
	} else if ref, ok := node.GetRef("Resources"); ok {
		if obj, err := r.Resolve(ref); err == nil {
			if dict, ok := obj.(core.Dict); ok {
				inh.resources = dict
			}
		}
	}
	if mb, ok := node.GetArray("MediaBox"); ok {
		inh.mediaBox = mb
	}

	typ, _ := node.GetName("Type")
	if typ == "Page" {
		*out = append(*out, r.buildPage(node, inh))
		return nil
	}

	kids, ok := node.GetArray("Kids")
	if !ok {
		// Single malformed node; treat a node with Contents as a page.
		if node.Has("Contents") {
			*out = append(*out, r.buildPage(node, inh))
		}
		return nil
	}
	for _, kid := range kids {
		obj, err := r.Resolve(kid)
		if err != nil {
			return fmt.Errorf("resolving page tree kid: %w", err)
		}
		dict, ok := obj.(core.Dict)
		if !ok {
			continue
		}
		if err := r.walkPages(dict, inh, out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) buildPage(dict core.Dict, inh inherited) *Page {
	width, height := defaultPageWidth, defaultPageHeight
	if len(inh.mediaBox) == 4 {
		llx, ok1 := inh.mediaBox.Float(0)
		lly, ok2 := inh.mediaBox.Float(1)
		urx, ok3 := inh.mediaBox.Float(2)
		ury, ok4 := inh.mediaBox.Float(3)
		if ok1 && ok2 && ok3 && ok4 && urx > llx && ury > lly {
			width = urx - llx
			height = ury - lly
		}
	}
	return &Page{
		Width:     width,
		Height:    height,
		Resources: inh.resources,
		dict:      dict,
		r:         r,
	}
}

// Content returns the page's decoded content stream bytes. Multiple
// streams are concatenated with a newline, matching how viewers
// interpret split content arrays. A stream that fails to decode
// contributes its raw bytes instead.
func (p *Page) Content() ([]byte, error) {
	contents := p.dict.Get("Contents")
	if contents == nil {
		return nil, nil
	}
	obj, err := p.r.Resolve(contents)
	if err != nil {
		return nil, fmt.Errorf("resolving contents: %w", err)
	}

	var streams []*core.Stream
	switch v := obj.(type) {
	case *core.Stream:
		streams = append(streams, v)
	case core.Array:
		for _, elem := range v {
			resolved, err := p.r.Resolve(elem)
			if err != nil {
				continue
			}
			if s, ok := resolved.(*core.Stream); ok {
				streams = append(streams, s)
			}
		}
	default:
		return nil, nil
	}

	var out []byte
	for _, s := range streams {
		data, err := s.Decode()
		if err != nil {
			data = s.Data
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, data...)
	}
	return out, nil
}

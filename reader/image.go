package reader

import (
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/ternpdf/tern/contentstream"
	"github.com/ternpdf/tern/core"
	"github.com/ternpdf/tern/model"
)

// ExtractImages collects the image XObjects of a page. positions maps
// XObject names to placements resolved from the content stream; an
// image with no placement lands at the origin with its declared pixel
// size. Extraction never fails outright: objects that cannot be read
// become elements with empty data, and each degraded object adds a
// warning.
func ExtractImages(p *Page, positions map[string]contentstream.Placement) ([]model.ImageElement, []string) {
	if p.Resources == nil {
		return nil, nil
	}
	xobjects := resolveDict(p.r, p.Resources.Get("XObject"))
	if xobjects == nil {
		return nil, nil
	}

	names := make([]string, 0, len(xobjects))
	for name := range xobjects {
		names = append(names, name)
	}
	sort.Strings(names)

	var elements []model.ImageElement
	var warnings []string
	for _, name := range names {
		obj, err := p.r.Resolve(xobjects.Get(name))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("xobject %s: %v", name, err))
			elements = append(elements, placeholderImage(name, positions))
			continue
		}
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		if subtype, _ := stream.Dict.GetName("Subtype"); subtype != "Image" {
			continue
		}

		width, _ := stream.Dict.GetInt("Width")
		height, _ := stream.Dict.GetInt("Height")

		el := model.ImageElement{
			Name:      name,
			Reference: name,
			Position:  imagePosition(name, positions, float64(width), float64(height)),
		}
		if len(stream.Data) == 0 {
			warnings = append(warnings, fmt.Sprintf("xobject %s: empty image data", name))
		} else {
			// Raw encoded bytes: JPEG data stays JPEG, flate data
			// stays compressed. The consumer decides how to decode.
			el.Data = base64.StdEncoding.EncodeToString(stream.Data)
		}
		elements = append(elements, el)
	}
	return elements, warnings
}

func imagePosition(name string, positions map[string]contentstream.Placement, width, height float64) model.Rect {
	if pl, ok := positions[name]; ok {
		return model.Rect{X: pl.X, Y: pl.Y, Width: pl.Width, Height: pl.Height}
	}
	return model.Rect{X: 0, Y: 0, Width: width, Height: height}
}

func placeholderImage(name string, positions map[string]contentstream.Placement) model.ImageElement {
	return model.ImageElement{
		Name:      name,
		Reference: name,
		Position:  imagePosition(name, positions, 0, 0),
	}
}

func resolveDict(r *Reader, obj core.Object) core.Dict {
	if obj == nil {
		return nil
	}
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil
	}
	dict, ok := resolved.(core.Dict)
	if !ok {
		return nil
	}
	return dict
}

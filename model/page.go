package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Page holds the elements of one page in top-left coordinate space.
type Page struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Elements   []Element   `json:"elements"`
	Containers []Container `json:"containers,omitempty"`
}

// Container is a reflow-mode region: text blocks without fixed positions,
// laid out by the reflow engine inside Bounds.
type Container struct {
	Bounds  Rect         `json:"bounds"`
	Padding float64      `json:"padding,omitempty"`
	Blocks  []*TextBlock `json:"blocks"`
}

// SortElements orders the page's elements by vertical position, keeping the
// original order of elements at equal height.
func (p *Page) SortElements() {
	sort.SliceStable(p.Elements, func(i, j int) bool {
		return p.Elements[i].Y() < p.Elements[j].Y()
	})
}

// TextBlocks returns the page's text elements in order.
func (p *Page) TextBlocks() []*TextBlock {
	var blocks []*TextBlock
	for _, el := range p.Elements {
		if tb, ok := el.(*TextBlock); ok {
			blocks = append(blocks, tb)
		}
	}
	return blocks
}

// elementEnvelope is the JSON wire form of an Element: the concrete fields
// plus a type discriminant.
type elementEnvelope struct {
	Type string `json:"type"`
}

// MarshalJSON encodes the page with a type tag on every element.
func (p *Page) MarshalJSON() ([]byte, error) {
	type pageAlias Page // avoid recursion
	raw := struct {
		*pageAlias
		Elements []json.RawMessage `json:"elements"`
	}{
		pageAlias: (*pageAlias)(p),
		Elements:  make([]json.RawMessage, 0, len(p.Elements)),
	}

	for _, el := range p.Elements {
		body, err := json.Marshal(el)
		if err != nil {
			return nil, err
		}
		tagged, err := json.Marshal(struct {
			Type string `json:"type"`
		}{el.Type().String()})
		if err != nil {
			return nil, err
		}
		// Splice the type tag into the element object.
		merged := append([]byte{'{'}, tagged[1:len(tagged)-1]...)
		if len(body) > 2 {
			merged = append(merged, ',')
			merged = append(merged, body[1:]...)
		} else {
			merged = append(merged, '}')
		}
		raw.Elements = append(raw.Elements, merged)
	}

	return json.Marshal(raw)
}

// UnmarshalJSON decodes a page, restoring concrete element types from the
// type tag.
func (p *Page) UnmarshalJSON(data []byte) error {
	type pageAlias Page
	raw := struct {
		*pageAlias
		Elements []json.RawMessage `json:"elements"`
	}{pageAlias: (*pageAlias)(p)}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Elements = make([]Element, 0, len(raw.Elements))
	for i, msg := range raw.Elements {
		var env elementEnvelope
		if err := json.Unmarshal(msg, &env); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}

		var el Element
		switch env.Type {
		case "text":
			el = &TextBlock{}
		case "image":
			el = &ImageElement{}
		case "graphic":
			el = &GraphicElement{}
		default:
			return fmt.Errorf("element %d: unknown type %q", i, env.Type)
		}
		if err := json.Unmarshal(msg, el); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		p.Elements = append(p.Elements, el)
	}
	return nil
}

package assemble

import (
	"testing"

	"github.com/ternpdf/tern/model"
)

func TestPageMergesAndSorts(t *testing.T) {
	a := NewAssembler()

	texts := []*model.TextBlock{
		{YPosition: 300, Content: []model.Span{{Text: "lower"}}},
		{YPosition: 50, Content: []model.Span{{Text: "upper"}}},
	}
	images := []model.ImageElement{
		{Name: "Im1", Position: model.Rect{X: 10, Y: 100, Width: 80, Height: 40}},
	}
	graphics := []model.GraphicElement{
		{Shape: model.ShapeRectangle, Position: model.Rect{X: 0, Y: 200, Width: 50, Height: 20}},
	}

	page := a.Page(612, 792, texts, images, graphics)

	if page.Width != 612 || page.Height != 792 {
		t.Errorf("page size = %vx%v, want 612x792", page.Width, page.Height)
	}
	if len(page.Elements) != 4 {
		t.Fatalf("got %d elements, want 4", len(page.Elements))
	}

	wantYs := []float64{50, 100, 200, 300}
	for i, el := range page.Elements {
		if el.Y() != wantYs[i] {
			t.Errorf("element %d at y=%v, want %v", i, el.Y(), wantYs[i])
		}
	}
}

func TestPageIssuesUniqueIDs(t *testing.T) {
	a := NewAssembler()

	first := a.Page(612, 792,
		[]*model.TextBlock{{YPosition: 10}, {YPosition: 20}},
		[]model.ImageElement{{Position: model.Rect{Y: 30}}},
		nil)
	second := a.Page(612, 792,
		[]*model.TextBlock{{YPosition: 10}},
		nil,
		[]model.GraphicElement{{Position: model.Rect{Y: 40}}})

	seen := make(map[string]bool)
	for _, page := range []*model.Page{first, second} {
		for _, el := range page.Elements {
			var id string
			switch e := el.(type) {
			case *model.TextBlock:
				id = e.ID
			case *model.ImageElement:
				id = e.ID
			case *model.GraphicElement:
				id = e.ID
			}
			if id == "" {
				t.Error("element without ID")
			}
			if seen[id] {
				t.Errorf("duplicate ID %q", id)
			}
			seen[id] = true
		}
	}
}

func TestPageContainer(t *testing.T) {
	a := NewAssembler()
	texts := []*model.TextBlock{{YPosition: 10, Content: []model.Span{{Text: "body"}}}}

	page := a.Page(612, 792, texts, nil, nil)

	if len(page.Containers) != 1 {
		t.Fatalf("got %d containers, want 1", len(page.Containers))
	}
	c := page.Containers[0]
	if c.Bounds.Width != 612 || c.Bounds.Height != 792 {
		t.Errorf("container bounds = %+v, want full page", c.Bounds)
	}
	if len(c.Blocks) != 1 || c.Blocks[0] != texts[0] {
		t.Error("container does not wrap the page's text blocks")
	}
}

func TestPageEmpty(t *testing.T) {
	a := NewAssembler()
	page := a.Page(612, 792, nil, nil, nil)
	if len(page.Elements) != 0 {
		t.Errorf("got %d elements, want 0", len(page.Elements))
	}
	if len(page.Containers) != 0 {
		t.Errorf("got %d containers, want 0", len(page.Containers))
	}
}

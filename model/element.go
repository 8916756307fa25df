package model

// ElementType identifies the concrete kind of a page element.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeText
	ElementTypeImage
	ElementTypeGraphic
)

// String returns the JSON discriminant for the element type.
func (et ElementType) String() string {
	switch et {
	case ElementTypeText:
		return "text"
	case ElementTypeImage:
		return "image"
	case ElementTypeGraphic:
		return "graphic"
	default:
		return "unknown"
	}
}

// Element is the closed union of page element kinds. The renderer dispatches
// exhaustively on the concrete type.
type Element interface {
	Type() ElementType
	Bounds() Rect
	// Y returns the vertical anchor used for reading-order sorting.
	Y() float64
}

// BlockKind classifies a text block.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
)

// TextStyle carries the renderable style of a text block.
type TextStyle struct {
	FontSize     float64 `json:"fontSize"`
	FontWeight   string  `json:"fontWeight,omitempty"`
	FontStyle    string  `json:"fontStyle,omitempty"`
	LineHeight   float64 `json:"lineHeight,omitempty"`
	MarginTop    float64 `json:"marginTop,omitempty"`
	MarginBottom float64 `json:"marginBottom,omitempty"`
	MarginLeft   float64 `json:"marginLeft,omitempty"`
}

// Span is a run of text with an optional style override.
type Span struct {
	Text          string     `json:"text"`
	StyleOverride *TextStyle `json:"styleOverride,omitempty"`
}

// TextBlock is a positioned block of text, either a heading or one or more
// paragraph lines.
type TextBlock struct {
	ID        string    `json:"id"`
	Kind      BlockKind `json:"kind"`
	Content   []Span    `json:"content"`
	XPosition float64   `json:"xPosition"`
	YPosition float64   `json:"yPosition"`
	Style     TextStyle `json:"style"`
}

func (t *TextBlock) Type() ElementType { return ElementTypeText }
func (t *TextBlock) Y() float64        { return t.YPosition }

// Bounds approximates the block extent from its position and font size.
func (t *TextBlock) Bounds() Rect {
	return Rect{X: t.XPosition, Y: t.YPosition, Height: t.Style.FontSize}
}

// Text returns the joined content text separated by spaces.
func (t *TextBlock) Text() string {
	switch len(t.Content) {
	case 0:
		return ""
	case 1:
		return t.Content[0].Text
	}
	n := 0
	for _, s := range t.Content {
		n += len(s.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, s := range t.Content {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// ImageElement is a placed raster image. Data holds the base64 encoding of
// the raw (still compressed) image bytes and may be empty when the source
// bytes could not be read; renderers fall back to a placeholder then.
type ImageElement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Position  Rect   `json:"position"`
	Data      string `json:"data,omitempty"`
	Reference string `json:"reference,omitempty"`
}

func (i *ImageElement) Type() ElementType { return ElementTypeImage }
func (i *ImageElement) Bounds() Rect      { return i.Position }
func (i *ImageElement) Y() float64        { return i.Position.Y }

// ShapeKind classifies a graphic element.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeLine      ShapeKind = "line"
	ShapePath      ShapeKind = "path"
)

// GraphicStyle carries stroke and fill attributes. Colors use the textual
// "rgb(r,g,b)" encoding with 0-255 channels; empty means unset.
type GraphicStyle struct {
	Stroke    string  `json:"stroke,omitempty"`
	Fill      string  `json:"fill,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`
}

// GraphicElement is a vector shape. Rectangles use Position; lines and paths
// use Points (two points for a line, more for a path).
type GraphicElement struct {
	ID       string       `json:"id"`
	Shape    ShapeKind    `json:"shape"`
	Position Rect         `json:"position"`
	Points   []Point      `json:"points,omitempty"`
	Style    GraphicStyle `json:"style"`
}

func (g *GraphicElement) Type() ElementType { return ElementTypeGraphic }

func (g *GraphicElement) Bounds() Rect {
	if g.Shape == ShapeRectangle || len(g.Points) == 0 {
		return g.Position
	}
	minX, minY := g.Points[0].X, g.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range g.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (g *GraphicElement) Y() float64 { return g.Bounds().Y }

package font

import "strings"

// Face is a resolved font with a width table. The zero value is not
// usable; obtain faces through Resolve.
type Face struct {
	name   string
	widths map[rune]float64
}

// Resolve maps an arbitrary font name onto one of the standard 14
// faces. Exact standard names resolve to themselves. Anything else is
// substituted by a Helvetica face matching the name's weight and slant,
// so "ABCDEF+Arial-BoldMT" measures as Helvetica-Bold.
func Resolve(name string) *Face {
	if w, ok := standardWidths[name]; ok {
		return &Face{name: name, widths: w}
	}
	base := "Helvetica"
	bold := IsBoldName(name)
	italic := IsItalicName(name)
	switch {
	case bold && italic:
		base = "Helvetica-BoldOblique"
	case bold:
		base = "Helvetica-Bold"
	case italic:
		base = "Helvetica-Oblique"
	}
	return &Face{name: base, widths: standardWidths[base]}
}

// Name returns the standard base font name the face resolved to.
func (f *Face) Name() string {
	return f.name
}

// Width returns the width of r in 1000ths of an em.
func (f *Face) Width(r rune) float64 {
	if w, ok := f.widths[r]; ok {
		return w
	}
	return defaultGlyphWidth
}

// Measure returns the width of s rendered at the given size, in the
// same units as size.
func (f *Face) Measure(s string, size float64) float64 {
	total := 0.0
	for _, r := range s {
		total += f.Width(r)
	}
	return total * size / 1000.0
}

// IsBoldName reports whether a font name indicates a bold weight.
func IsBoldName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy")
}

// IsItalicName reports whether a font name indicates an italic or
// oblique slant.
func IsItalicName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}

package font

import (
	"math"
	"testing"
)

func TestResolveStandardNames(t *testing.T) {
	for _, name := range []string{
		"Helvetica", "Helvetica-Bold", "Times-Roman", "Times-BoldItalic",
		"Courier", "Courier-Oblique",
	} {
		face := Resolve(name)
		if face.Name() != name {
			t.Errorf("Resolve(%q).Name() = %q, want %q", name, face.Name(), name)
		}
	}
}

func TestResolveSubstitution(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Arial", "Helvetica"},
		{"ABCDEF+Arial-BoldMT", "Helvetica-Bold"},
		{"Calibri-Italic", "Helvetica-Oblique"},
		{"Georgia-BoldItalic", "Helvetica-BoldOblique"},
		{"SomeHeavyFace", "Helvetica-Bold"},
		{"Verdana-Oblique", "Helvetica-Oblique"},
		{"", "Helvetica"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.name).Name(); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	helv := Resolve("Helvetica")

	// 'H' = 722, 'i' = 222 in 1000ths of an em.
	got := helv.Measure("Hi", 10)
	want := (722.0 + 222.0) / 100.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Measure(\"Hi\", 10) = %v, want %v", got, want)
	}

	if got := helv.Measure("", 12); got != 0 {
		t.Errorf("Measure of empty string = %v, want 0", got)
	}
}

func TestMeasureUnknownGlyph(t *testing.T) {
	face := Resolve("Helvetica")
	// Characters outside the table fall back to the default width.
	got := face.Measure("é", 10)
	want := 5.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Measure of unknown glyph = %v, want %v", got, want)
	}
}

func TestCourierMonospaced(t *testing.T) {
	face := Resolve("Courier")
	wide := face.Measure("mmmm", 12)
	narrow := face.Measure("iiii", 12)
	if wide != narrow {
		t.Errorf("Courier widths differ: %v vs %v", wide, narrow)
	}
}

func TestBoldWiderThanRegular(t *testing.T) {
	s := "Example heading text"
	reg := Resolve("Helvetica").Measure(s, 12)
	bold := Resolve("Helvetica-Bold").Measure(s, 12)
	if bold <= reg {
		t.Errorf("bold measure %v not wider than regular %v", bold, reg)
	}
}

func TestNameHeuristics(t *testing.T) {
	tests := []struct {
		name   string
		bold   bool
		italic bool
	}{
		{"Helvetica-Bold", true, false},
		{"Roboto-Black", true, false},
		{"Arial-ItalicMT", false, true},
		{"Courier-BoldOblique", true, true},
		{"Times-Roman", false, false},
	}
	for _, tt := range tests {
		if got := IsBoldName(tt.name); got != tt.bold {
			t.Errorf("IsBoldName(%q) = %v, want %v", tt.name, got, tt.bold)
		}
		if got := IsItalicName(tt.name); got != tt.italic {
			t.Errorf("IsItalicName(%q) = %v, want %v", tt.name, got, tt.italic)
		}
	}
}

package tern

import (
	"github.com/ternpdf/tern/model"
	"github.com/ternpdf/tern/render"
)

// importOptions holds configuration for Import.
type importOptions struct {
	mode   model.Mode
	title  string
	author string
}

func defaultImportOptions() importOptions {
	return importOptions{mode: model.ModePreserve}
}

// ImportOption configures Import.
type ImportOption func(*importOptions)

// WithMode sets the document's export mode recorded in its metadata.
func WithMode(mode model.Mode) ImportOption {
	return func(o *importOptions) { o.mode = mode }
}

// WithTitle overrides the title read from the document information
// dictionary.
func WithTitle(title string) ImportOption {
	return func(o *importOptions) { o.title = title }
}

// WithAuthor overrides the author read from the document information
// dictionary.
func WithAuthor(author string) ImportOption {
	return func(o *importOptions) { o.author = author }
}

// exportOptions holds configuration for Export.
type exportOptions struct {
	rightMargin     float64
	includeImages   bool
	includeGraphics bool
}

func defaultExportOptions() exportOptions {
	return exportOptions{
		rightMargin:     render.DefaultRightMargin,
		includeImages:   true,
		includeGraphics: true,
	}
}

// ExportOption configures Export.
type ExportOption func(*exportOptions)

// WithRightMargin overrides the assumed right page margin, in points,
// used when deciding whether preserved text must wrap.
func WithRightMargin(margin float64) ExportOption {
	return func(o *exportOptions) { o.rightMargin = margin }
}

// WithoutImages drops image elements from the output.
func WithoutImages() ExportOption {
	return func(o *exportOptions) { o.includeImages = false }
}

// WithoutGraphics drops vector graphic elements from the output.
func WithoutGraphics() ExportOption {
	return func(o *exportOptions) { o.includeGraphics = false }
}

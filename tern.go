// Package tern converts PDF pages into an editable, position-preserving
// document model and converts the model back into PDF bytes.
//
// Importing walks each page's content stream, extracts image and vector
// resources, segments externally supplied glyph runs into text blocks
// and assembles everything into a model.Document:
//
//	doc, warnings, err := tern.Import(pdfBytes, textRuns)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tern.FormatWarnings(warnings))
//	}
//
// Exporting renders the model back to PDF, either preserving recorded
// positions or reflowing text, per the document's mode:
//
//	out, warnings, err := tern.Export(doc)
//
// Degraded inputs (undecodable images, malformed colors, damaged
// cross-reference tables) surface as warnings; an error is returned only
// when no usable content exists at all.
package tern

import (
	"fmt"
	"strings"
)

// Warning reports a non-fatal issue encountered while processing.
// Page is 1-based; 0 means the warning is not tied to a page.
type Warning struct {
	Page      int
	Component string
	Message   string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d [%s]: %s", w.Page, w.Component, w.Message)
	}
	return fmt.Sprintf("[%s]: %s", w.Component, w.Message)
}

// FormatWarnings renders warnings as a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

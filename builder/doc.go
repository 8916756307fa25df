// Package builder provides a fluent API for PDF page construction.
//
// A Document collects pages, document information and shared image
// resources. Each Page accumulates a content stream through Draw
// calls; coordinates are PDF-native with the origin at the bottom-left
// of the page. Callers working in top-left space convert before
// drawing.
//
// The builder produces content streams and resource tables only.
// Serialization to bytes is the writer package's job.
package builder

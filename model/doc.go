// Package model defines the editable document model produced by import and
// consumed by export.
//
// A Document is an ordered list of Pages; each Page holds an ordered list of
// Elements in top-left coordinate space (y grows downward, unlike raw PDF
// coordinates). Elements are a closed union of three kinds:
//
//   - TextBlock - a positioned run of styled text (heading or paragraph)
//   - ImageElement - a placed raster image, data carried as base64
//   - GraphicElement - a vector shape (rectangle, line, or path)
//
// The model is plain data: every field survives a round trip through
// encoding/json, so documents can be handed to editing frontends and accepted
// back without loss. Export must not assume a document originated from this
// importer.
//
// Elements on a page are kept sorted by YPosition so that iteration follows
// reading order across element kinds.
package model

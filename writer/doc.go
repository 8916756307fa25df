// Package writer serializes builder output to PDF bytes.
//
// It emits a classic cross-reference table file: header, indirect
// objects for the catalog, page tree, fonts, image XObjects and
// Flate-compressed content streams, then xref, trailer and startxref.
// Object numbering is deterministic for a given input, so identical
// documents serialize to identical bytes.
package writer

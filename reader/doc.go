// Package reader provides access to PDF documents: the cross-reference
// table, the object graph, the page tree and page-level resources.
//
// A Reader works over the raw file bytes. Objects are parsed lazily on
// first access and cached. When the cross-reference table is missing
// or damaged the reader falls back to scanning the file for indirect
// object headers, which recovers most real-world damaged files.
//
// The package also extracts image resources from a page, pairing each
// XObject with its resolved placement. Extraction is best-effort:
// unreadable objects become elements with empty data and a warning,
// never an error.
package reader

// Package resolver follows indirect references through a PDF object
// graph.
//
// Malformed files can contain reference cycles; the resolver tracks
// visited object numbers within a single resolution and enforces a
// depth limit, so resolution always terminates with an error rather
// than recursing forever.
package resolver

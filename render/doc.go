// Package render turns a document model back into draw calls.
//
// The preserve renderer keeps every element at its recorded position,
// wrapping a text block only when it measurably overruns the page.
// The reflow engine ignores recorded positions inside a container and
// lays text out as a word-wrapped flow instead.
//
// Model coordinates are top-left; the renderer flips to the
// bottom-left space the builder package expects. Degraded inputs
// (undecodable images, malformed colors) produce warnings and
// fallbacks rather than errors.
package render

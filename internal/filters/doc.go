// Package filters implements the stream decompression filters the import
// pipeline needs: FlateDecode (with PNG/TIFF predictors), ASCIIHexDecode,
// ASCII85Decode, and CCITTFaxDecode.
//
// Callers that can tolerate undecodable data are expected to fall back to the
// raw bytes rather than fail; every function here returns an error instead of
// guessing, and the fallback policy lives with the caller.
package filters

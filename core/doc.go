// Package core provides the PDF object model and low-level parsing used by the
// import pipeline.
//
// # Object Types
//
// PDF files are built from a small set of object types, all of which implement
// the Object interface:
//
//   - Null, Bool, Int, Real - scalar values
//   - String - byte strings (literal or hex encoded)
//   - Name - interned identifiers written as /Name
//   - Array - ordered collections
//   - Dict - key/value maps with Name keys
//   - Stream - a dictionary plus raw byte data
//   - IndirectRef - a reference to a numbered object elsewhere in the file
//
// # Parsing
//
// Parser reads objects from a byte slice:
//
//	p := core.NewParser(data)
//	obj, err := p.ParseObject()
//
// ParseIndirectAt parses a complete "N G obj ... endobj" body at a byte
// offset, including stream data when present.
//
// # Streams
//
// Stream.Decode applies the filters named in the stream dictionary
// (FlateDecode, ASCIIHexDecode, ASCII85Decode, CCITTFaxDecode). Image filters
// such as DCTDecode are passed through unchanged so the encoded bytes stay
// available to the export side.
package core

// Package contentstream interprets PDF page content streams.
//
// Parse tokenizes a decompressed content stream into operations, each an
// operator with its preceding operands:
//
//	ops, err := contentstream.Parse(data)
//	for _, op := range ops {
//	    fmt.Printf("%s %v\n", op.Operator, op.Operands)
//	}
//
// Scan turns operations into drawing events tagged with their category
// (placement, path construction, path painting, state change) and the
// graphics state in effect. The state is a single running record: save and
// restore operators (q/Q) are not modeled, which is a deliberate
// approximation - the last writer of a color or line width wins.
//
// Transform handling is equally narrow: a six-value cm matrix [a b c d e f]
// preceding an XObject placement is read as scale (a, d) and translation
// (e, f); the shear components b and c are ignored. Documents relying on
// rotation or shear will mis-extract. ResolvePlacements converts matrices to
// absolute positions in top-left page space.
//
// Unrecognized operators are skipped, never surfaced as errors: the only way
// to get nothing out of a page is for the page to have no content stream at
// all.
package contentstream

// Package font provides text measurement against the standard 14 PDF
// font metrics.
//
// Widths are expressed in 1000ths of an em, as in AFM files. Measure
// scales them by the requested size so callers work in page units
// directly. Font names that are not one of the standard 14 are mapped
// onto the closest Helvetica face by weight and slant, which keeps
// measurement deterministic for documents that embed their own fonts.
package font

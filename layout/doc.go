// Package layout groups positioned glyph runs into text blocks and merges
// blocks back into paragraphs.
//
// The Segmenter works import-side. It is deliberately conservative: every
// visual line becomes its own block, split further on style changes and
// column gaps. Re-merging lines that belong to one logical paragraph is the
// Grouper's job on the export side, because the renderer needs whole
// paragraphs to make width-based wrap decisions.
//
// The thresholds here (3-unit same-line tolerance, 50-unit column break,
// 2-unit font size jump, 5-unit alignment tolerance) are tuned policy, not
// derived values. Re-validate against a representative document corpus
// before changing them.
package layout

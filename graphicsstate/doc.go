// Package graphicsstate extracts vector graphics (rectangles, lines, paths)
// from page content streams.
//
// The extractor walks the drawing events produced by the contentstream
// scanner. A rectangle operator yields a rectangle element directly; move-to
// starts point accumulation and line-to extends it; the terminating paint
// operator classifies the accumulated points - exactly two make a line, more
// make a path. Fill color attaches only for fill and fill-and-stroke paint
// variants, never stroke-only.
//
// Color and line-width state persists across shapes until reassigned, the
// same single-record approximation the scanner uses.
//
// Coordinates are converted to top-left page space on the way out. Colors
// are stored in the model's textual "rgb(r,g,b)" encoding.
package graphicsstate

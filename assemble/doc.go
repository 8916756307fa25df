// Package assemble merges extracted text, image, and graphic elements into
// ordered model pages.
//
// The assembler is the only place element IDs are generated and the only
// owner of element ordering: pages come out with their elements sorted by
// vertical position so iteration follows reading order across element
// kinds. It also builds the single full-page container that reflow-mode
// consumers lay out.
//
// Assembly is pure computation; failures only ever propagate from inputs.
package assemble

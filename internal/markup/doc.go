// Package markup turns policy Markdown into a target-independent document model.
//
// The package covers the subset of Markdown that policy documents use:
// headings, paragraphs, flat lists, fenced code, block quotes, pipe tables
// and horizontal rules, with bold, italic, code and link spans inline.
// Anything outside that subset degrades to literal text rather than failing.
//
// Rendering lives elsewhere: emitters walk the Document produced by Parse
// and decide how each Block and Span is written for their target.
package markup

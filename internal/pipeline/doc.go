// Package pipeline implements the HTML publishing path.
//
// Stages, in order:
//   - Markdown preprocessing (line ending normalisation, blank line compression)
//   - Markdown to HTML fragment via Goldmark, code highlighted with chroma classes
//   - Sanitisation of the fragment with bluemonday
//   - Page assembly through a pongo2 template carrying theme variables
//   - Relative path rewriting, only when Chrome prints the page to PDF
//
// The LaTeX path does not use this package; it runs on internal/markup.
package pipeline

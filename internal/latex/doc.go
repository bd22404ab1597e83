// Package latex renders parsed policy documents to LaTeX and drives the
// typesetting engine.
//
// The flow is Body (document to body fragment), Substitute (fragment into
// a template with theme and metadata tokens) and Compiler.Compile (two
// engine passes over the resulting .tex file).
package latex

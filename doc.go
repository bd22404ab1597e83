// Package trustforge publishes policy documents, Markdown with a YAML front
// matter block, as themed PDF and HTML.
//
// # Quick Start
//
// Create a renderer, render a policy, and close when done:
//
//	r, err := trustforge.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	res, err := r.RenderPDF(ctx, trustforge.Input{
//	    Source: string(content),
//	    Name:   "access-control",
//	    OutDir: "out",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.PDFPath)
//
// A policy starts with its metadata:
//
//	---
//	title: Access Control Policy
//	version: "1.2"
//	owner: CISO
//	last_reviewed: 2025-01-01
//	---
//	# Purpose
//	...
//
// # PDF Pipeline
//
// The default engine typesets through LaTeX:
//
//  1. Front matter split and line ending normalization
//  2. Removal of a hand-written "Table of Contents" section
//  3. Heading labels: every heading gets a unique {#id}
//  4. Block parsing and inline lexing into a typed document
//  5. LaTeX emission with single-pass escaping
//  6. Template substitution (theme, optional blocks, metadata, body)
//  7. Two xelatex passes to resolve the table of contents
//
// WithEngine("chrome") prints the HTML page with headless Chrome instead.
//
// # Errors
//
// Failures are reported with sentinel errors usable with errors.Is:
// ErrFrontMatter and ErrMissingFrontMatter for bad metadata,
// ErrTemplateIntegrity and ErrUnresolvedPlaceholder for broken templates,
// ErrCompilerNotFound when xelatex is missing. A failed pass returns a
// *CompileError whose LogPath points at the engine log. Malformed Markdown
// is never an error.
//
// # Parallel Processing
//
// A Renderer is not safe for concurrent use. For batches use RendererPool:
//
//	pool := trustforge.NewRendererPool(trustforge.ResolvePoolSize(0))
//	defer pool.Close()
//
//	r, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(r)
//
// # Custom Assets
//
// WithAssetPath overrides the embedded files; anything missing falls back:
//
//	assets/
//	├── templates/
//	│   ├── latex/policy.tex
//	│   └── html/policy.html
//	├── styles/policy.css
//	└── themes/neutral.yaml
package trustforge

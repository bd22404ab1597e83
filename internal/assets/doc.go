// Package assets provides the templates, stylesheets and themes used to
// publish policies. Assets can be loaded from embedded files or a custom
// directory.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is what the renderer uses. It tries the custom directory
// first and falls back to the embedded copy when an asset is not found, so
// a user can override the LaTeX template alone and keep everything else.
//
// # Directory Structure
//
//	{basePath}/
//	├── templates/
//	│   ├── latex/{name}.tex     # PDF template with __POLICY_BODY__
//	│   └── html/{name}.html     # HTML page template
//	├── styles/{name}.css        # HTML stylesheet using --tf-* variables
//	└── themes/{name}.yaml       # Theme tokens
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets

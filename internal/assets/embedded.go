package assets

import (
	"embed"
	"fmt"
)

//go:embed templates styles themes
var builtin embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) load(k kind, name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	// embed.FS paths always use forward slashes.
	content, err := builtin.ReadFile(k.dir + "/" + name + k.ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", k.notFound, name)
	}
	return content, nil
}

// LoadLaTeXTemplate loads a built-in LaTeX template.
func (e *EmbeddedLoader) LoadLaTeXTemplate(name string) (string, error) {
	b, err := e.load(latexTemplates, name)
	return string(b), err
}

// LoadHTMLTemplate loads a built-in HTML template.
func (e *EmbeddedLoader) LoadHTMLTemplate(name string) (string, error) {
	b, err := e.load(htmlTemplates, name)
	return string(b), err
}

// LoadStyle loads a built-in stylesheet.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	b, err := e.load(styleSheets, name)
	return string(b), err
}

// LoadTheme loads a built-in theme.
func (e *EmbeddedLoader) LoadTheme(name string) ([]byte, error) {
	return e.load(themeFiles, name)
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)

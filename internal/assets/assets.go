package assets

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// DefaultLaTeXTemplate returns the built-in PDF template.
func DefaultLaTeXTemplate() string {
	s, _ := defaultLoader.LoadLaTeXTemplate(DefaultTemplateName)
	return s
}

// DefaultTheme returns the built-in theme YAML.
func DefaultTheme() []byte {
	b, _ := defaultLoader.LoadTheme(DefaultThemeName)
	return b
}

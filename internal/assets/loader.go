package assets

// AssetLoader defines the contract for loading publishing assets by name.
// Names never include a directory or extension.
type AssetLoader interface {
	// LoadLaTeXTemplate loads templates/latex/{name}.tex.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadLaTeXTemplate(name string) (string, error)

	// LoadHTMLTemplate loads templates/html/{name}.html.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadHTMLTemplate(name string) (string, error)

	// LoadStyle loads styles/{name}.css.
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTheme loads themes/{name}.yaml.
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) ([]byte, error)
}

// Default asset names.
const (
	DefaultTemplateName = "policy"
	DefaultStyleName    = "policy"
	DefaultThemeName    = "neutral"
)

// kind locates one family of assets.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	latexTemplates = kind{dir: "templates/latex", ext: ".tex", notFound: ErrTemplateNotFound}
	htmlTemplates  = kind{dir: "templates/html", ext: ".html", notFound: ErrTemplateNotFound}
	styleSheets    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	themeFiles     = kind{dir: "themes", ext: ".yaml", notFound: ErrThemeNotFound}
)

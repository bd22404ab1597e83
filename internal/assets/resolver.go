package assets

import "errors"

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadLaTeXTemplate loads a LaTeX template, custom first.
func (r *AssetResolver) LoadLaTeXTemplate(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) { return l.LoadLaTeXTemplate(name) })
}

// LoadHTMLTemplate loads an HTML template, custom first.
func (r *AssetResolver) LoadHTMLTemplate(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) { return l.LoadHTMLTemplate(name) })
}

// LoadStyle loads a stylesheet, custom first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return withFallback(r, func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTheme loads a theme, custom first.
func (r *AssetResolver) LoadTheme(name string) ([]byte, error) {
	return withFallback(r, func(l AssetLoader) ([]byte, error) { return l.LoadTheme(name) })
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// withFallback implements the custom-first, fallback-to-embedded logic.
// Only "not found" errors fall back; validation and I/O errors do not.
func withFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	content, err := load(r.custom)
	if err == nil {
		return content, nil
	}
	if !isNotFoundError(err) {
		var zero T
		return zero, err
	}
	return load(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrThemeNotFound)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)

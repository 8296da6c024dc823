package assets

// AssetLoader defines the contract for loading build assets.
type AssetLoader interface {
	// LoadStyle loads a page style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a template by name (without .tmpl extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// LoadStatic loads a published static file by its file name,
	// e.g. "lightbox.css".
	// Returns ErrStaticNotFound if the file doesn't exist.
	// Returns ErrInvalidAssetName if the name contains path components.
	LoadStatic(name string) ([]byte, error)
}

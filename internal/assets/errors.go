package assets

import "errors"

// Sentinel errors for asset lookups.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrStaticNotFound   = errors.New("static file not found")

	// ErrInvalidAssetName rejects empty names and names that could
	// escape the asset directory.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath means html.assetPath is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	ErrAssetRead     = errors.New("failed to read asset")
	ErrPathTraversal = errors.New("path traversal detected")
)

package lightbox

import "errors"

// Sentinel errors for directive processing.
var (
	// Path validation errors.
	ErrPathTraversal = errors.New("image path escapes source directory")
	ErrImageNotFound = errors.New("image file not found")

	// Dimension probe errors.
	ErrImageDimensions  = errors.New("cannot determine image dimensions")
	ErrUnsupportedImage = errors.New("unsupported image format")

	// Directive syntax errors.
	ErrMissingArgument   = errors.New("directive requires exactly one argument")
	ErrUnknownOption     = errors.New("unknown directive option")
	ErrDuplicateOption   = errors.New("duplicate directive option")
	ErrInvalidOption     = errors.New("invalid directive option value")
	ErrUnexpectedContent = errors.New("directive does not accept content")

	// ErrStaticNotFound indicates the requested static file is not shipped.
	ErrStaticNotFound = errors.New("static file not found")
)

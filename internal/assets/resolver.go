package assets

import (
	"errors"
)

// AssetResolver layers an optional directory over the embedded assets.
// A name missing from the directory is served from the embedded set;
// any other failure from the directory is returned as is.
type AssetResolver struct {
	custom   *FilesystemLoader // nil when no asset path is configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath
// serves embedded assets only. A non-empty one must be a readable
// directory, otherwise the error wraps ErrInvalidBasePath.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return resolver, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	resolver.custom = fsLoader
	return resolver, nil
}

// LoadStyle loads a page style such as "default".
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return loadWithFallback(r, func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadTemplate loads a page or LaTeX template.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return loadWithFallback(r, func(loader AssetLoader) (string, error) {
		return loader.LoadTemplate(name)
	})
}

// LoadStatic loads a file published under _static, such as lightbox.css.
func (r *AssetResolver) LoadStatic(name string) ([]byte, error) {
	return loadWithFallback(r, func(loader AssetLoader) ([]byte, error) {
		return loader.LoadStatic(name)
	})
}

// CustomPath returns the absolute asset directory, or "" when only
// embedded assets are served.
func (r *AssetResolver) CustomPath() string {
	if r.custom == nil {
		return ""
	}
	return r.custom.BasePath()
}

func loadWithFallback[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	content, err := load(r.custom)
	if err == nil {
		return content, nil
	}
	if !isNotFound(err) {
		var zero T
		return zero, err
	}
	return load(r.embedded)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrStaticNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)

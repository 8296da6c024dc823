package assets

import (
	"strings"

	"github.com/alnah/go-lightbox/internal/fileutil"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a page style by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a template by name using the default embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// ResolveStyle loads a page style from loader. A value that looks like a
// path (or ends in .css) is read from disk; an empty value selects DefaultStyleName.
func ResolveStyle(loader AssetLoader, nameOrPath string) (string, error) {
	switch {
	case nameOrPath == "":
		return loader.LoadStyle(DefaultStyleName)
	case fileutil.IsFilePath(nameOrPath), strings.HasSuffix(nameOrPath, ".css"):
		return LoadStyleFile(nameOrPath)
	default:
		return loader.LoadStyle(nameOrPath)
	}
}

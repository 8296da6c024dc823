package lightbox

import (
	"embed"
	"fmt"
)

// Static file names, published by the host under its static directory.
const (
	StylesheetName = "lightbox.css"
	ScriptName     = "lightbox.js"
)

//go:embed static/lightbox.css static/lightbox.js
var static embed.FS

// StaticFile returns the content of a shipped static file by name.
func StaticFile(name string) ([]byte, error) {
	content, err := static.ReadFile("static/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrStaticNotFound, name)
	}
	return content, nil
}

// StaticAssets returns every shipped static file keyed by name.
func StaticAssets() map[string][]byte {
	out := make(map[string][]byte, 2)
	for _, name := range StaticNames() {
		content, err := StaticFile(name)
		if err == nil {
			out[name] = content
		}
	}
	return out
}

// StaticNames returns the shipped static file names.
func StaticNames() []string {
	return []string{StylesheetName, ScriptName}
}

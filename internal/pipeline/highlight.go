package pipeline

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightStylesheetName is the published name of the code highlighting
// stylesheet.
const HighlightStylesheetName = "highlight.css"

// DefaultHighlightStyle is the chroma style used for code blocks.
const DefaultHighlightStyle = "github"

// HighlightCSS returns the stylesheet for chroma's CSS classes in the named
// style. Unknown names fall back to chroma's default style.
func HighlightCSS(styleName string) ([]byte, error) {
	style := styles.Get(styleName)
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return nil, fmt.Errorf("writing highlight css: %w", err)
	}
	return buf.Bytes(), nil
}

package lightbox

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Format names an output format.
type Format string

// Output formats with explicit visitor tables. Any other format renders
// lightbox nodes as nothing.
const (
	FormatHTML    Format = "html"
	FormatLaTeX   Format = "latex"
	FormatEPUB    Format = "epub"
	FormatText    Format = "text"
	FormatMan     Format = "man"
	FormatTexinfo Format = "texinfo"
)

// DefaultImagePath is the output directory images are published under,
// relative to the page being written.
const DefaultImagePath = "_images"

// ImageLocator maps a source-relative image path to the file name the host
// published it under.
type ImageLocator interface {
	Lookup(uri string) (name string, ok bool)
}

// ImageLocatorFunc adapts a function to ImageLocator.
type ImageLocatorFunc func(uri string) (string, bool)

// Lookup calls f(uri).
func (f ImageLocatorFunc) Lookup(uri string) (string, bool) { return f(uri) }

// ImageMap is a fixed ImageLocator.
type ImageMap map[string]string

// Lookup returns m[uri].
func (m ImageMap) Lookup(uri string) (string, bool) {
	name, ok := m[uri]
	return name, ok
}

// RenderOption configures a NodeRenderer.
type RenderOption func(*NodeRenderer)

// WithImageLocator sets the lookup for published image names.
func WithImageLocator(l ImageLocator) RenderOption {
	return func(r *NodeRenderer) { r.locator = l }
}

// WithImagePath sets the prefix joined to published image names in HTML.
func WithImagePath(p string) RenderOption {
	return func(r *NodeRenderer) { r.imagePath = p }
}

// visitor renders one node kind. It is called on entry and on exit.
type visitor func(r *NodeRenderer, w util.BufWriter, n ast.Node, entering bool) (ast.WalkStatus, error)

type visitors struct {
	container visitor
	trigger   visitor
	overlay   visitor
	collector visitor
}

func visitNoop(*NodeRenderer, util.BufWriter, ast.Node, bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

// visitSkip drops the node and everything below it.
func visitSkip(*NodeRenderer, util.BufWriter, ast.Node, bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

var noopVisitors = visitors{
	container: visitNoop,
	trigger:   visitNoop,
	overlay:   visitNoop,
	collector: visitSkip,
}

var formatVisitors = map[Format]visitors{
	FormatHTML: {
		container: visitContainerHTML,
		trigger:   visitTriggerHTML,
		overlay:   visitOverlayHTML,
		collector: visitSkip,
	},
	FormatLaTeX: {
		container: visitContainerLaTeX,
		trigger:   visitNoop,
		overlay:   visitNoop,
		collector: visitSkip,
	},
	FormatEPUB:    noopVisitors,
	FormatText:    noopVisitors,
	FormatMan:     noopVisitors,
	FormatTexinfo: noopVisitors,
}

// NodeRenderer renders lightbox nodes for one output format.
// It implements renderer.NodeRenderer.
type NodeRenderer struct {
	format    Format
	table     visitors
	locator   ImageLocator
	imagePath string
}

// NewNodeRenderer returns the renderer for format. Unknown formats get the
// no-op table.
func NewNodeRenderer(format Format, opts ...RenderOption) *NodeRenderer {
	table, ok := formatVisitors[format]
	if !ok {
		table = noopVisitors
	}
	r := &NodeRenderer{
		format:    format,
		table:     table,
		imagePath: DefaultImagePath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format returns the output format r renders.
func (r *NodeRenderer) Format() Format { return r.format }

// RegisterFuncs implements renderer.NodeRenderer.
func (r *NodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindContainer, r.bind(r.table.container))
	reg.Register(KindTrigger, r.bind(r.table.trigger))
	reg.Register(KindOverlay, r.bind(r.table.overlay))
	reg.Register(KindCollector, r.bind(r.table.collector))
}

func (r *NodeRenderer) bind(v visitor) renderer.NodeRendererFunc {
	return func(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
		return v(r, w, n, entering)
	}
}

// lookup returns the published name for uri, if the host registered one.
func (r *NodeRenderer) lookup(uri string) (string, bool) {
	if r.locator == nil {
		return "", false
	}
	return r.locator.Lookup(uri)
}

// Compile-time interface check.
var _ renderer.NodeRenderer = (*NodeRenderer)(nil)

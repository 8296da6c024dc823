package lightbox

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// priority places the lightbox transformer and renderer ahead of goldmark's
// defaults.
const priority = 100

// Option configures an Extender.
type Option func(*Extender)

// WithFormat selects the output format the renderer targets. Default html.
func WithFormat(f Format) Option {
	return func(e *Extender) { e.format = f }
}

// WithRenderOptions passes options to the node renderer.
func WithRenderOptions(opts ...RenderOption) Option {
	return func(e *Extender) { e.renderOptions = append(e.renderOptions, opts...) }
}

// WithProber replaces the dimension prober. A nil prober skips probing and
// uses a square aspect ratio.
func WithProber(p Prober) Option {
	return func(e *Extender) { e.prober = p }
}

// WithReporter sets the reporter used when the document's Environment has
// none.
func WithReporter(r Reporter) Option {
	return func(e *Extender) { e.reporter = r }
}

// WithSourceDir sets the source root used when a document is parsed without
// an Environment.
func WithSourceDir(dir string) Option {
	return func(e *Extender) { e.sourceDir = dir }
}

// Extender is a goldmark extension adding the {lightbox} directive.
type Extender struct {
	format        Format
	renderOptions []RenderOption
	prober        Prober
	reporter      Reporter
	sourceDir     string
}

// Extension is an Extender with default options.
var Extension = New()

// New creates an Extender.
func New(opts ...Option) *Extender {
	e := &Extender{
		format:    FormatHTML,
		prober:    ImageProber{},
		reporter:  Discard,
		sourceDir: ".",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.reporter == nil {
		e.reporter = Discard
	}
	return e
}

// Transformer returns the AST transformer configured for e.
func (e *Extender) Transformer() *Transformer {
	return &Transformer{prober: e.prober, reporter: e.reporter, sourceDir: e.sourceDir}
}

// NodeRenderer returns the node renderer configured for e.
func (e *Extender) NodeRenderer() *NodeRenderer {
	return NewNodeRenderer(e.format, e.renderOptions...)
}

// Extend implements goldmark.Extender.
func (e *Extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(e.Transformer(), priority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(e.NodeRenderer(), priority),
	))
}

// Compile-time interface check.
var _ goldmark.Extender = (*Extender)(nil)

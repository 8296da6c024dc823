package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	lightbox "github.com/alnah/go-lightbox"
)

// ErrRender indicates a document could not be rendered.
var ErrRender = errors.New("rendering failed")

// Renderer priorities. Lower values win for node kinds registered twice.
const (
	priorityLightbox  = 100
	priorityImage     = 150
	priorityHighlight = 200
	priorityGFM       = 500
	priorityCore      = 1000
)

// HTMLOptions configures HTML rendering of one document.
type HTMLOptions struct {
	// Locator maps source-relative image paths to published file names.
	Locator lightbox.ImageLocator
	// ImagePath is the image directory relative to the page, e.g. "../_images".
	ImagePath string
	// IDPrefix keeps footnote ids distinct when documents share a page.
	IDPrefix string
}

// NewHTMLRenderer builds the goldmark renderer for one HTML page: the core
// renderer, GFM and footnote renderers, chroma highlighting with CSS classes,
// published image paths, and the lightbox nodes.
func NewHTMLRenderer(opts HTMLOptions) renderer.Renderer {
	var footnoteOpts []extension.FootnoteOption
	if opts.IDPrefix != "" {
		footnoteOpts = append(footnoteOpts, extension.WithFootnoteIDPrefix([]byte(opts.IDPrefix)))
	}

	return renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(html.NewRenderer(), priorityCore),
		util.Prioritized(extension.NewTableHTMLRenderer(), priorityGFM),
		util.Prioritized(extension.NewStrikethroughHTMLRenderer(), priorityGFM),
		util.Prioritized(extension.NewTaskCheckBoxHTMLRenderer(), priorityGFM),
		util.Prioritized(extension.NewFootnoteHTMLRenderer(footnoteOpts...), priorityGFM),
		util.Prioritized(highlighting.NewHTMLRenderer(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
			),
		), priorityHighlight),
		util.Prioritized(&htmlImageRenderer{locator: opts.Locator, imagePath: opts.ImagePath}, priorityImage),
		util.Prioritized(lightbox.NewNodeRenderer(lightbox.FormatHTML,
			lightbox.WithImageLocator(opts.Locator),
			lightbox.WithImagePath(opts.ImagePath),
		), priorityLightbox),
	))
}

// RenderHTML renders doc as an HTML fragment.
func RenderHTML(ctx context.Context, doc *Document, opts HTMLOptions) (string, error) {
	return render(ctx, NewHTMLRenderer(opts), doc)
}

func render(ctx context.Context, r renderer.Renderer, doc *Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, doc.Source, doc.Root); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, doc.Name, err)
	}
	return buf.String(), nil
}

// LocateImage returns the published name for a destination rewritten by the
// read phase ("/" + source-relative path).
func LocateImage(loc lightbox.ImageLocator, dest string) (string, bool) {
	if loc == nil || !strings.HasPrefix(dest, "/") {
		return "", false
	}
	return loc.Lookup(strings.TrimPrefix(dest, "/"))
}

// htmlImageRenderer renders ast.Image with published destinations.
type htmlImageRenderer struct {
	locator   lightbox.ImageLocator
	imagePath string
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *htmlImageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *htmlImageRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)

	dest := string(n.Destination)
	if name, ok := LocateImage(r.locator, dest); ok {
		dest = joinURL(r.imagePath, name)
	}

	_, _ = w.WriteString(`<img src="`)
	if !html.IsDangerousURL([]byte(dest)) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(dest), true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(lightbox.ImageAlt(n, source))))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	return ast.WalkSkipChildren, nil
}

func joinURL(dir, name string) string {
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// Compile-time interface check.
var _ renderer.NodeRenderer = (*htmlImageRenderer)(nil)

package lightbox

import (
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// outputURI maps a source-relative image path to its HTML output path.
// Unregistered paths pass through unchanged.
func (r *NodeRenderer) outputURI(uri string) string {
	if name, ok := r.lookup(uri); ok {
		if r.imagePath == "" {
			return name
		}
		return strings.TrimSuffix(r.imagePath, "/") + "/" + name
	}
	return uri
}

func visitContainerHTML(_ *NodeRenderer, w util.BufWriter, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<div class="lightbox-container">` + "\n")
	} else {
		_, _ = w.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}

func visitTriggerHTML(r *NodeRenderer, w util.BufWriter, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Trigger)

	id := html.EscapeString(n.CheckboxID)
	uri := html.EscapeString(r.outputURI(n.URI))
	alt := html.EscapeString(n.Alt)
	width := n.ThumbnailWidth
	if width == "" {
		width = "100%"
	}
	width = html.EscapeString(width)
	cls := strings.TrimSpace("lightbox-trigger " + html.EscapeString(n.Class))

	var b strings.Builder
	b.WriteString(`<label for="` + id + `" class="lightbox-trigger-label" `)
	b.WriteString(`tabindex="0" role="button" `)
	b.WriteString(`aria-label="Enlarge image: ` + alt + `">` + "\n")
	b.WriteString(`  <img src="` + uri + `" alt="` + alt + `" class="` + cls + `" `)
	b.WriteString(`style="width: ` + width + `;">` + "\n")
	b.WriteString("</label>\n")
	_, _ = w.WriteString(b.String())
	return ast.WalkContinue, nil
}

func visitOverlayHTML(r *NodeRenderer, w util.BufWriter, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Overlay)

	id := html.EscapeString(n.CheckboxID)
	uri := html.EscapeString(r.outputURI(n.URI))
	alt := html.EscapeString(n.Alt)
	caption := html.EscapeString(n.Caption)
	style := html.EscapeString(n.SizeStyle)
	cls := strings.TrimSpace(html.EscapeString(n.Class))

	var b strings.Builder
	b.WriteString(`<input type="checkbox" id="` + id + `" `)
	b.WriteString(`class="lightbox-toggle" aria-hidden="true" tabindex="-1">` + "\n")
	b.WriteString(`<div class="lightbox-overlay" role="dialog" aria-modal="true" `)
	b.WriteString(`aria-label="` + alt + `">` + "\n")
	b.WriteString(`  <label for="` + id + `" class="lightbox-close" `)
	b.WriteString(`tabindex="0" role="button" aria-label="Close lightbox">`)
	b.WriteString("&times;</label>\n")
	b.WriteString(`  <div class="lightbox-content">` + "\n")

	imgClass := ""
	if cls != "" {
		imgClass = ` class="` + cls + `"`
	}
	b.WriteString(`    <img src="` + uri + `" alt="` + alt + `"` + imgClass + ` `)
	b.WriteString(`style="` + style + `">` + "\n")

	if caption != "" {
		b.WriteString(`    <p class="lightbox-caption">` + caption + "</p>\n")
	}

	b.WriteString("  </div>\n")
	b.WriteString(`  <label for="` + id + `" class="lightbox-backdrop-close" `)
	b.WriteString(`aria-hidden="true"></label>` + "\n")
	b.WriteString("</div>\n")
	_, _ = w.WriteString(b.String())
	return ast.WalkContinue, nil
}

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	lightbox "github.com/alnah/go-lightbox"
)

// NewTextRenderer builds the goldmark renderer for plain-text output.
// Lightbox nodes render as nothing.
func NewTextRenderer() renderer.Renderer {
	return renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(&textRenderer{}, priorityCore),
		util.Prioritized(lightbox.NewNodeRenderer(lightbox.FormatText), priorityLightbox),
	))
}

// RenderText renders doc as plain text.
func RenderText(ctx context.Context, doc *Document) (string, error) {
	out, err := render(ctx, NewTextRenderer(), doc)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

type textRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *textRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.heading)
	reg.Register(ast.KindParagraph, r.paragraph)
	reg.Register(ast.KindTextBlock, r.textBlock)
	reg.Register(ast.KindText, r.text)
	reg.Register(ast.KindString, r.str)
	reg.Register(ast.KindCodeBlock, r.codeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.codeBlock)
	reg.Register(ast.KindList, r.list)
	reg.Register(ast.KindListItem, r.listItem)
	reg.Register(ast.KindThematicBreak, r.thematicBreak)
	reg.Register(ast.KindLink, r.link)
	reg.Register(ast.KindAutoLink, r.autoLink)
	reg.Register(ast.KindImage, r.image)
	reg.Register(ast.KindRawHTML, skipNode)
	reg.Register(ast.KindHTMLBlock, skipNode)

	reg.Register(east.KindTaskCheckBox, r.taskCheckBox)
	reg.Register(east.KindTable, r.table)
	reg.Register(east.KindTableRow, r.tableRow)
	reg.Register(east.KindTableHeader, r.tableRow)
	reg.Register(east.KindTableCell, r.tableCell)
	reg.Register(east.KindFootnoteLink, r.footnoteLink)
	reg.Register(east.KindFootnoteBacklink, skipNode)
	reg.Register(east.KindFootnote, r.footnote)
}

func (r *textRenderer) heading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	title := plainText(node, source)
	_, _ = w.WriteString(title + "\n")
	switch node.(*ast.Heading).Level {
	case 1:
		_, _ = w.WriteString(strings.Repeat("=", utf8.RuneCountInString(title)) + "\n")
	case 2:
		_, _ = w.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)) + "\n")
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

func (r *textRenderer) paragraph(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) textBlock(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) text(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	_, _ = w.Write(n.Segment.Value(source))
	if n.SoftLineBreak() || n.HardLineBreak() {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) str(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(node.(*ast.String).Value)
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) codeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.WriteString("    ")
		_, _ = w.Write(seg.Value(source))
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

func (r *textRenderer) list(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering || !node.(*ast.List).IsTight {
		return ast.WalkContinue, nil
	}
	if _, nested := node.Parent().(*ast.ListItem); !nested {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) listItem(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	list, _ := node.Parent().(*ast.List)
	depth := 0
	for p := node.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.ListItem); ok {
			depth++
		}
	}
	_, _ = w.WriteString(strings.Repeat("  ", depth))
	if list != nil && list.IsOrdered() {
		idx := list.Start
		for s := node.PreviousSibling(); s != nil; s = s.PreviousSibling() {
			idx++
		}
		_, _ = w.WriteString(fmt.Sprintf("%d. ", idx))
	} else {
		_, _ = w.WriteString("- ")
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) thematicBreak(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("----\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) link(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString(" <" + string(node.(*ast.Link).Destination) + ">")
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) autoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(node.(*ast.AutoLink).Label(source))
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) image(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		if alt := lightbox.ImageAlt(node.(*ast.Image), source); alt != "" {
			_, _ = w.WriteString("[image: " + alt + "]")
		} else {
			_, _ = w.WriteString("[image]")
		}
	}
	return ast.WalkSkipChildren, nil
}

func (r *textRenderer) taskCheckBox(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if node.(*east.TaskCheckBox).IsChecked {
		_, _ = w.WriteString("[x] ")
	} else {
		_, _ = w.WriteString("[ ] ")
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) table(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) tableRow(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) tableCell(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && node.PreviousSibling() != nil {
		_, _ = w.WriteString(" | ")
	}
	return ast.WalkContinue, nil
}

func (r *textRenderer) footnoteLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(fmt.Sprintf("[%d]", node.(*east.FootnoteLink).Index))
	}
	return ast.WalkSkipChildren, nil
}

func (r *textRenderer) footnote(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(fmt.Sprintf("[%d] ", node.(*east.Footnote).Index))
	}
	return ast.WalkContinue, nil
}

// Compile-time interface check.
var _ renderer.NodeRenderer = (*textRenderer)(nil)

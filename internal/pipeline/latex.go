package pipeline

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	lightbox "github.com/alnah/go-lightbox"
)

// LaTeXOptions configures LaTeX rendering of one document.
type LaTeXOptions struct {
	// Locator maps source-relative image paths to published file names.
	Locator lightbox.ImageLocator
	// LabelPrefix keeps \label names distinct across concatenated documents.
	LabelPrefix string
}

// NewLaTeXRenderer builds the goldmark renderer for a LaTeX body.
func NewLaTeXRenderer(opts LaTeXOptions) renderer.Renderer {
	return renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(&latexRenderer{locator: opts.Locator, labelPrefix: opts.LabelPrefix}, priorityCore),
		util.Prioritized(lightbox.NewNodeRenderer(lightbox.FormatLaTeX,
			lightbox.WithImageLocator(opts.Locator),
		), priorityLightbox),
	))
}

// RenderLaTeX renders doc as a LaTeX body fragment.
func RenderLaTeX(ctx context.Context, doc *Document, opts LaTeXOptions) (string, error) {
	return render(ctx, NewLaTeXRenderer(opts), doc)
}

var latexSections = [...]string{`\section`, `\subsection`, `\subsubsection`, `\paragraph`, `\subparagraph`, `\subparagraph`}

// latexURL escapes the characters hyperref cannot take verbatim in \href.
var latexURL = strings.NewReplacer(`\`, `\\`, "%", `\%`, "#", `\#`, "{", `\{`, "}", `\}`)

type latexRenderer struct {
	locator     lightbox.ImageLocator
	labelPrefix string
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *latexRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.heading)
	reg.Register(ast.KindParagraph, r.paragraph)
	reg.Register(ast.KindTextBlock, r.textBlock)
	reg.Register(ast.KindText, r.text)
	reg.Register(ast.KindString, r.str)
	reg.Register(ast.KindEmphasis, r.emphasis)
	reg.Register(ast.KindCodeSpan, r.codeSpan)
	reg.Register(ast.KindCodeBlock, r.codeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.codeBlock)
	reg.Register(ast.KindBlockquote, r.blockquote)
	reg.Register(ast.KindList, r.list)
	reg.Register(ast.KindListItem, r.listItem)
	reg.Register(ast.KindThematicBreak, r.thematicBreak)
	reg.Register(ast.KindLink, r.link)
	reg.Register(ast.KindAutoLink, r.autoLink)
	reg.Register(ast.KindImage, r.image)
	reg.Register(ast.KindRawHTML, skipNode)
	reg.Register(ast.KindHTMLBlock, skipNode)

	reg.Register(east.KindStrikethrough, r.strikethrough)
	reg.Register(east.KindTaskCheckBox, r.taskCheckBox)
	reg.Register(east.KindTable, r.table)
	reg.Register(east.KindTableHeader, r.tableRow)
	reg.Register(east.KindTableRow, r.tableRow)
	reg.Register(east.KindTableCell, r.tableCell)
	reg.Register(east.KindFootnoteLink, r.footnoteLink)
	reg.Register(east.KindFootnoteBacklink, skipNode)
	reg.Register(east.KindFootnoteList, r.footnoteList)
	reg.Register(east.KindFootnote, r.footnote)
}

func skipNode(util.BufWriter, []byte, ast.Node, bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) heading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if entering {
		_, _ = w.WriteString(latexSections[n.Level-1] + "{")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("}")
	if id, ok := n.AttributeString("id"); ok {
		if b, ok := id.([]byte); ok {
			_, _ = w.WriteString(`\label{` + r.labelPrefix + string(b) + "}")
		}
	}
	_, _ = w.WriteString("\n\n")
	return ast.WalkContinue, nil
}

func (r *latexRenderer) paragraph(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) textBlock(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering && node.NextSibling() != nil {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) text(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	_, _ = w.WriteString(lightbox.EscapeLaTeX(string(n.Segment.Value(source))))
	switch {
	case n.HardLineBreak():
		_, _ = w.WriteString("\\\\\n")
	case n.SoftLineBreak():
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) str(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(lightbox.EscapeLaTeX(string(node.(*ast.String).Value)))
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) emphasis(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('}')
		return ast.WalkContinue, nil
	}
	if node.(*ast.Emphasis).Level >= 2 {
		_, _ = w.WriteString(`\textbf{`)
	} else {
		_, _ = w.WriteString(`\emph{`)
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) codeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\texttt{` + lightbox.EscapeLaTeX(plainText(node, source)) + "}")
	}
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) codeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString("\\begin{verbatim}\n")
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.Write(seg.Value(source))
	}
	_, _ = w.WriteString("\\end{verbatim}\n\n")
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) blockquote(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("\\begin{quote}\n")
	} else {
		_, _ = w.WriteString("\\end{quote}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) list(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	env := "itemize"
	if n.IsOrdered() {
		env = "enumerate"
	}
	if !entering {
		_, _ = w.WriteString(`\end{` + env + "}\n\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`\begin{` + env + "}\n")
	if n.IsOrdered() && n.Start > 1 {
		_, _ = w.WriteString(fmt.Sprintf("\\setcounter{%s}{%d}\n", enumCounter(n), n.Start-1))
	}
	return ast.WalkContinue, nil
}

// enumCounter names the enumerate counter for the list's nesting depth.
func enumCounter(n ast.Node) string {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		if l, ok := p.(*ast.List); ok && l.IsOrdered() {
			depth++
		}
	}
	counters := [...]string{"enumi", "enumii", "enumiii", "enumiv"}
	if depth >= len(counters) {
		depth = len(counters) - 1
	}
	return counters[depth]
}

func (r *latexRenderer) listItem(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\item `)
	} else {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) thematicBreak(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("\\noindent\\rule{\\linewidth}{0.4pt}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) link(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_ = w.WriteByte('}')
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`\href{` + latexURL.Replace(string(node.(*ast.Link).Destination)) + "}{")
	return ast.WalkContinue, nil
}

func (r *latexRenderer) autoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	url := string(n.URL(source))
	if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		url = "mailto:" + url
	}
	_, _ = w.WriteString(`\href{` + latexURL.Replace(url) + "}{" + lightbox.EscapeLaTeX(string(n.Label(source))) + "}")
	return ast.WalkContinue, nil
}

func (r *latexRenderer) image(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.Image)
	dest := string(n.Destination)

	if lightbox.IsRemote(dest) {
		// LaTeX cannot embed remote files; keep a link instead.
		alt := lightbox.ImageAlt(n, source)
		if alt == "" {
			alt = dest
		}
		_, _ = w.WriteString(`\href{` + latexURL.Replace(dest) + "}{" + lightbox.EscapeLaTeX(alt) + "}")
		return ast.WalkSkipChildren, nil
	}

	name, ok := LocateImage(r.locator, dest)
	if !ok {
		name = path.Base(dest)
	}
	_, _ = w.WriteString(`\adjustbox{max width=\linewidth}{\includegraphics{` + lightbox.SafeFileName(name) + "}}")
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) strikethrough(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\sout{`)
	} else {
		_ = w.WriteByte('}')
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) taskCheckBox(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if node.(*east.TaskCheckBox).IsChecked {
		_, _ = w.WriteString(`$\boxtimes$ `)
	} else {
		_, _ = w.WriteString(`$\square$ `)
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) table(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("\\end{tabular}\n\\end{center}\n\n")
		return ast.WalkContinue, nil
	}
	var cols strings.Builder
	cols.WriteByte('|')
	for _, a := range node.(*east.Table).Alignments {
		switch a {
		case east.AlignCenter:
			cols.WriteByte('c')
		case east.AlignRight:
			cols.WriteByte('r')
		default:
			cols.WriteByte('l')
		}
		cols.WriteByte('|')
	}
	_, _ = w.WriteString("\\begin{center}\n\\begin{tabular}{" + cols.String() + "}\n\\hline\n")
	return ast.WalkContinue, nil
}

func (r *latexRenderer) tableRow(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString(" \\\\ \\hline\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) tableCell(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && node.PreviousSibling() != nil {
		_, _ = w.WriteString(" & ")
	}
	if entering && node.Parent().Kind() == east.KindTableHeader {
		_, _ = w.WriteString(`\textbf{`)
	}
	if !entering && node.Parent().Kind() == east.KindTableHeader {
		_ = w.WriteByte('}')
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) footnoteLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(fmt.Sprintf(`\textsuperscript{%d}`, node.(*east.FootnoteLink).Index))
	}
	return ast.WalkSkipChildren, nil
}

func (r *latexRenderer) footnoteList(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("\\subsection*{Notes}\n\\begin{enumerate}\n")
	} else {
		_, _ = w.WriteString("\\end{enumerate}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *latexRenderer) footnote(w util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\item `)
	} else {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

// plainText concatenates the text below n.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// Compile-time interface check.
var _ renderer.NodeRenderer = (*latexRenderer)(nil)

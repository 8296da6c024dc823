package lightbox

import (
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`%`, `\%`,
	`&`, `\&`,
	`$`, `\$`,
	`_`, `\_`,
	`#`, `\#`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
	`[`, `{[}`,
	`]`, `{]}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
	`|`, `\textbar{}`,
)

// EscapeLaTeX escapes text for use in LaTeX body text.
func EscapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}

// SafeFileName maps every byte outside [A-Za-z0-9._-] to "_", so the name
// can be passed to \includegraphics unescaped.
func SafeFileName(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// latexFile returns the published name for uri, or its base name.
func (r *NodeRenderer) latexFile(uri string) string {
	if name, ok := r.lookup(uri); ok {
		return SafeFileName(name)
	}
	return SafeFileName(path.Base(uri))
}

func visitContainerLaTeX(r *NodeRenderer, w util.BufWriter, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Container)

	width := n.LaTeXWidth
	if width == "" {
		width = "0.95"
	}

	var b strings.Builder
	b.WriteString("\n\\begin{figure}[htbp]\n\\centering\n")
	b.WriteString(`\adjustbox{max width=` + width + `\linewidth}{\includegraphics{` + r.latexFile(n.URI) + "}}\n")
	if n.Caption != "" {
		b.WriteString(`\caption{` + EscapeLaTeX(n.Caption) + "}\n")
	}
	b.WriteString("\\end{figure}\n")
	_, _ = w.WriteString(b.String())
	return ast.WalkSkipChildren, nil
}

package lightbox

import (
	"bytes"
	"errors"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// DefaultDocName is used when a document is parsed without an Environment.
const DefaultDocName = "document"

// Transformer replaces {lightbox} fenced blocks with lightbox composites.
// It implements parser.ASTTransformer.
type Transformer struct {
	prober    Prober
	reporter  Reporter
	sourceDir string
}

// Transform implements parser.ASTTransformer.
func (t *Transformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fb.Info == nil {
			return ast.WalkContinue, nil
		}
		if IsDirectiveInfo(string(fb.Info.Segment.Value(source))) {
			blocks = append(blocks, fb)
		}
		return ast.WalkSkipChildren, nil
	})
	if len(blocks) == 0 {
		return
	}

	env := EnvironmentFrom(pc)
	if env == nil {
		env = NewEnvironment(DefaultDocName, t.sourceDir)
		WithEnvironment(pc, env)
	}
	if env.Reporter == nil {
		env.Reporter = t.reporter
		defer func() { env.Reporter = nil }()
	}

	for _, fb := range blocks {
		t.replace(env, fb, source)
	}
}

func (t *Transformer) replace(env *Environment, fb *ast.FencedCodeBlock, source []byte) {
	parent := fb.Parent()
	if parent == nil {
		return
	}

	info := string(fb.Info.Segment.Value(source))
	lines := make([]string, 0, fb.Lines().Len())
	for i := 0; i < fb.Lines().Len(); i++ {
		seg := fb.Lines().At(i)
		lines = append(lines, string(seg.Value(source)))
	}
	line := bytes.Count(source[:fb.Info.Segment.Start], []byte("\n")) + 1

	d, err := ParseDirective(info, lines)
	if err != nil {
		env.report(Diagnostic{
			Subtype:  SubtypeDirective,
			Severity: SeverityError,
			Line:     line,
			Err:      err,
			Message:  directiveMessage(err),
		})
		parent.RemoveChild(parent, fb)
		return
	}
	d.Line = line

	out := Run(env, d, t.prober)
	switch n := out.(type) {
	case nil:
		parent.RemoveChild(parent, fb)
	case *ast.Image:
		p := ast.NewParagraph()
		p.AppendChild(p, n)
		parent.ReplaceChild(parent, fb, p)
	default:
		parent.ReplaceChild(parent, fb, n)
	}
}

func directiveMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingArgument):
		return `error in "lightbox" directive: ` + err.Error()
	case errors.Is(err, ErrUnexpectedContent):
		return `error in "lightbox" directive: no content permitted: ` + err.Error()
	default:
		return `error in "lightbox" directive: invalid option block: ` + err.Error()
	}
}

// Compile-time interface check.
var _ parser.ASTTransformer = (*Transformer)(nil)

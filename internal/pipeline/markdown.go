package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	lightbox "github.com/alnah/go-lightbox"
)

// ErrParse indicates a document could not be parsed.
var ErrParse = errors.New("markdown parsing failed")

// Document is one parsed source document.
type Document struct {
	// Name is the slash-separated document name without extension.
	Name string
	// Source is the normalized Markdown the AST segments point into.
	Source []byte
	// Root is the parsed AST.
	Root ast.Node
}

// Parser parses Markdown documents with the lightbox directive enabled.
// It is safe for concurrent use; per-document state travels in the
// lightbox.Environment passed to Parse.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Parser with GFM, footnotes and heading IDs. The
// lightbox options configure the directive, e.g. its prober.
func NewParser(opts ...lightbox.Option) *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			lightbox.New(opts...),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings (required for TOC)
		),
	)
	return &Parser{md: md}
}

// Parse normalizes src and parses it against env.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (p *Parser) Parse(ctx context.Context, src []byte, env *lightbox.Environment) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if env == nil {
		return nil, fmt.Errorf("%w: nil environment", ErrParse)
	}

	src = Normalize(src)

	type result struct {
		root ast.Node
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %s: %v", ErrParse, env.DocName, r)}
			}
		}()
		root := p.md.Parser().Parse(text.NewReader(src), parser.WithContext(lightbox.NewContext(env)))
		done <- result{root: root}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		return &Document{Name: env.DocName, Source: src, Root: r.root}, nil
	}
}

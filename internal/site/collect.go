package site

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/yuin/goldmark/ast"

	lightbox "github.com/alnah/go-lightbox"
	"github.com/alnah/go-lightbox/internal/pipeline"
)

// Host diagnostic categories.
const (
	ImageWarningType                   = "image"
	SubtypeNotReadable lightbox.Subtype = "not_readable"
)

// collectImages resolves every local image in doc, records it in tracker,
// and rewrites its destination to "/" plus the source-relative path so the
// renderers can look up the published name. Lightbox collector images are
// already in that form and resolve to themselves.
func collectImages(doc *pipeline.Document, sourceDir string, tracker lightbox.AssetTracker, reporter lightbox.Reporter) {
	_ = ast.Walk(doc.Root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := n.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := string(img.Destination)
		if dest == "" || lightbox.IsRemote(dest) || hasScheme(dest) {
			return ast.WalkContinue, nil
		}

		resolved, err := lightbox.ResolveImagePath(unescapePath(dest), doc.Name, sourceDir)
		if err != nil {
			reporter.Report(lightbox.Diagnostic{
				Type:    ImageWarningType,
				Subtype: SubtypeNotReadable,
				DocName: doc.Name,
				Line:    lineOf(n, doc.Source),
				Message: "image file not readable: " + dest,
				Err:     err,
			})
			return ast.WalkContinue, nil
		}
		img.Destination = []byte("/" + resolved)
		tracker.AddFile(doc.Name, resolved)
		return ast.WalkContinue, nil
	})
}

// hasScheme reports whether dest carries a URL scheme such as data: or
// mailto:. Single-letter schemes are drive letters, not URLs.
func hasScheme(dest string) bool {
	u, err := url.Parse(dest)
	return err == nil && len(u.Scheme) > 1
}

// unescapePath decodes percent-escapes so "my%20pic.png" finds "my pic.png".
func unescapePath(dest string) string {
	if !strings.Contains(dest, "%") {
		return dest
	}
	if p, err := url.PathUnescape(dest); err == nil {
		return p
	}
	return dest
}

// lineOf returns the 1-based source line of n: the line of its first text
// segment, else the first line of the enclosing block, else 0.
func lineOf(n ast.Node, source []byte) int {
	offset := -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering && t.Segment.Len() > 0 {
			offset = t.Segment.Start
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	for p := n; offset < 0 && p != nil; p = p.Parent() {
		if p.Type() != ast.TypeBlock {
			continue
		}
		if lines := p.Lines(); lines != nil && lines.Len() > 0 {
			offset = lines.At(0).Start
		}
	}
	if offset < 0 || offset > len(source) {
		return 0
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}

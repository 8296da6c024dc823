package lightbox

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// writeFile creates dir/rel with content, making parent directories.
func writeFile(t *testing.T, dir, rel string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return p
}

// pngBytes encodes a blank w x h PNG.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

// fixedProber returns the same size for every path.
func fixedProber(w, h float64) Prober {
	return ProberFunc(func(string) (Size, error) {
		return Size{Width: w, Height: h}, nil
	})
}

// convert parses and renders src through a goldmark instance carrying the
// extension, using env for the document.
func convert(t *testing.T, src string, env *Environment, opts ...Option) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(New(opts...)))
	doc := md.Parser().Parse(text.NewReader([]byte(src)), parser.WithContext(NewContext(env)))
	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, []byte(src), doc); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

// parse returns the AST for src with the extension's transformer applied.
func parse(t *testing.T, src string, env *Environment, opts ...Option) ast.Node {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(New(opts...)))
	return md.Parser().Parse(text.NewReader([]byte(src)), parser.WithContext(NewContext(env)))
}

// findKind returns every node of kind k under root, in document order.
func findKind(root ast.Node, k ast.NodeKind) []ast.Node {
	var out []ast.Node
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == k {
			out = append(out, n)
		}
		return ast.WalkContinue, nil
	})
	return out
}

type fileRecord struct {
	doc  string
	path string
}

type recordingTracker struct {
	files []fileRecord
}

func (r *recordingTracker) AddFile(docName, path string) {
	r.files = append(r.files, fileRecord{doc: docName, path: path})
}

// chdir changes the working directory to dir for the duration of the test,
// restoring it on cleanup (a stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

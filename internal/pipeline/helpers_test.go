package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"

	lightbox "github.com/alnah/go-lightbox"
)

// writeFile creates dir/rel with content, making parent directories.
func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// squareProber reports every image as 100x100.
var squareProber = lightbox.ProberFunc(func(string) (lightbox.Size, error) {
	return lightbox.Size{Width: 100, Height: 100}, nil
})

// parseDoc parses md as document name against a source dir holding the
// given files.
func parseDoc(t *testing.T, name, md string, files ...string) (*Document, *lightbox.DiagnosticCollector) {
	t.Helper()
	src := t.TempDir()
	for _, f := range files {
		writeFile(t, src, f, "stub")
	}
	diags := &lightbox.DiagnosticCollector{}
	env := lightbox.NewEnvironment(name, src)
	env.Reporter = diags

	doc, err := NewParser(lightbox.WithProber(squareProber)).Parse(context.Background(), []byte(md), env)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc, diags
}

// assertBalanced fails when the HTML fragment has unclosed or stray
// non-void elements.
func assertBalanced(t *testing.T, fragment string) {
	t.Helper()
	void := map[string]bool{"img": true, "input": true, "br": true, "hr": true, "meta": true, "link": true}
	var stack []string
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				t.Fatalf("tokenize: %v", z.Err())
			}
			if len(stack) != 0 {
				t.Errorf("unclosed elements: %v", stack)
			}
			return
		case html.StartTagToken:
			name, _ := z.TagName()
			if !void[string(name)] {
				stack = append(stack, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(stack) == 0 || stack[len(stack)-1] != string(name) {
				t.Fatalf("unexpected </%s>, open: %v", name, stack)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	lightbox "github.com/alnah/go-lightbox"
	"github.com/alnah/go-lightbox/internal/config"
	"github.com/alnah/go-lightbox/internal/pipeline"
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

// readFile returns the content of dir/rel, failing the test if it is absent.
func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertContains(t *testing.T, label, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("%s missing %q", label, want)
		}
	}
}

// stubProber reports every image as 200x100.
var stubProber = lightbox.ProberFunc(func(string) (lightbox.Size, error) {
	return lightbox.Size{Width: 200, Height: 100}, nil
})

// testConfig returns a config building src into src/_build.
func testConfig(src string, formats ...string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Project.Name = "Test Docs"
	cfg.Project.Author = "Ann Lee"
	cfg.Source.Dir = src
	cfg.Output.Dir = filepath.Join(src, DefaultOutputDir)
	cfg.Output.Formats = formats
	cfg.Build.Workers = 2
	return cfg
}

// writeFixture lays out a two-document source tree with two images.
// guide/a.md references a missing image on line 7.
func writeFixture(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	writeFile(t, src, "index.md", "# Home\n\nWelcome.\n\n## Section\n\n"+
		"```{lightbox} img/a.png\n:alt: Diagram\n:caption: Figure 1\n```\n\n"+
		"![other](img/b.png)\n")
	writeFile(t, src, "guide/a.md", "# Guide A\n\n"+
		"```{lightbox} ../img/a.png\n:alt: Again\n```\n\n"+
		"![missing](missing.png)\n")
	writeFile(t, src, "img/a.png", "png-a")
	writeFile(t, src, "img/b.png", "png-b")
	return src
}

// docsNamed returns empty documents with the given names.
func docsNamed(names ...string) []*pipeline.Document {
	docs := make([]*pipeline.Document, len(names))
	for i, n := range names {
		docs[i] = &pipeline.Document{Name: n}
	}
	return docs
}

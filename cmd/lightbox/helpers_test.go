package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	lightbox "github.com/alnah/go-lightbox"
)

// testEnv returns an environment with captured output, the given variables
// and a prober that reports 200x100 for every image.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		Prober: lightbox.ProberFunc(func(string) (lightbox.Size, error) {
			return lightbox.Size{Width: 200, Height: 100}, nil
		}),
	}
	return env, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// setupProject creates a source tree with one lightbox document and a
// config file pointing at it. Returns the project root and config path.
func setupProject(t *testing.T, extraDocs map[string]string) (string, string) {
	t.Helper()
	files := map[string]string{
		"docs/index.md":  "# Home\n\n```{lightbox} img/a.png\n:alt: Diagram\n```\n",
		"docs/img/a.png": "png",
	}
	for k, v := range extraDocs {
		files["docs/"+k] = v
	}
	root := setupTestDir(t, files)

	cfgPath := filepath.Join(root, "lightbox.yaml")
	cfg := "project:\n  name: CLI Docs\n" +
		"source:\n  dir: \"" + filepath.ToSlash(filepath.Join(root, "docs")) + "\"\n" +
		"output:\n  dir: \"" + filepath.ToSlash(filepath.Join(root, "out")) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return root, cfgPath
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output missing %q\n%s", want, got)
	}
}

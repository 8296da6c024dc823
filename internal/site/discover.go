package site

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-lightbox/internal/fileutil"
	"github.com/alnah/go-lightbox/internal/hints"
)

// ErrNoDocuments indicates discovery found no Markdown sources.
var ErrNoDocuments = errors.New("no documents found")

// ErrDuplicateDocument indicates two sources map to the same document name,
// e.g. "a.md" and "a.markdown".
var ErrDuplicateDocument = errors.New("duplicate document name")

// RootDocument is the document name placed first in discovery order.
const RootDocument = "index"

// DefaultOutputDir is skipped during discovery even when it lies inside the
// source directory.
const DefaultOutputDir = "_build"

// Source is one discovered Markdown file.
type Source struct {
	// Name is the slash-separated path relative to the source root, without
	// extension, e.g. "guide/install".
	Name string
	// Path is the file's path on disk.
	Path string
}

// Discover walks sourceDir for .md and .markdown files. Hidden entries, the
// default output directory, and paths matching an exclude glob are skipped.
// Globs are matched against slash-separated relative paths; a matching
// directory excludes everything below it. Results are sorted by name, with
// RootDocument first.
func Discover(sourceDir string, exclude []string) ([]Source, error) {
	if !fileutil.DirExists(sourceDir) {
		return nil, fmt.Errorf("source directory %s: %w", sourceDir, fs.ErrNotExist)
	}

	var out []Source
	err := filepath.WalkDir(sourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if p == sourceDir {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if skipEntry(d, rel, exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(rel) {
			return nil
		}
		out = append(out, Source{Name: strings.TrimSuffix(rel, path.Ext(rel)), Path: p})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s%s", ErrNoDocuments, sourceDir, hints.ForNoDocuments(sourceDir))
	}

	sort.Slice(out, func(i, j int) bool {
		if (out[i].Name == RootDocument) != (out[j].Name == RootDocument) {
			return out[i].Name == RootDocument
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	for i := 1; i < len(out); i++ {
		if out[i].Name == out[i-1].Name {
			return nil, fmt.Errorf("%w %q: %s and %s", ErrDuplicateDocument, out[i].Name, out[i-1].Path, out[i].Path)
		}
	}
	return out, nil
}

func skipEntry(d fs.DirEntry, rel string, exclude []string) bool {
	name := d.Name()
	if strings.HasPrefix(name, ".") {
		return true
	}
	if d.IsDir() && name == DefaultOutputDir {
		return true
	}
	for _, pattern := range exclude {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

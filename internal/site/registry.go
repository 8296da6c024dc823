package site

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	lightbox "github.com/alnah/go-lightbox"
	"github.com/alnah/go-lightbox/internal/fileutil"
)

// ImageRegistry records the images documents depend on and assigns their
// published names. Recording is safe for concurrent use; Assign must run
// once every document has been read.
type ImageRegistry struct {
	mu    sync.Mutex
	deps  map[string]map[string]struct{} // doc name -> resolved paths
	names map[string]string              // resolved path -> published name
}

// NewImageRegistry creates an empty registry.
func NewImageRegistry() *ImageRegistry {
	return &ImageRegistry{
		deps:  make(map[string]map[string]struct{}),
		names: make(map[string]string),
	}
}

// AddFile implements lightbox.AssetTracker.
func (r *ImageRegistry) AddFile(docName, p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	files, ok := r.deps[docName]
	if !ok {
		files = make(map[string]struct{})
		r.deps[docName] = files
	}
	files[p] = struct{}{}
}

// Dependencies returns the sorted images docName depends on.
func (r *ImageRegistry) Dependencies(docName string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.deps[docName]))
	for p := range r.deps[docName] {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Assign gives every recorded image a published name: its base name, with
// a numeric suffix when an earlier path in sorted order took the name.
func (r *ImageRegistry) Assign() {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make(map[string]struct{})
	for _, files := range r.deps {
		for p := range files {
			all[p] = struct{}{}
		}
	}
	paths := make([]string, 0, len(all))
	for p := range all {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	r.names = make(map[string]string, len(paths))
	taken := make(map[string]bool, len(paths))
	for _, p := range paths {
		name := uniqueName(lightbox.SafeFileName(path.Base(p)), taken)
		taken[name] = true
		r.names[p] = name
	}
}

func uniqueName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		name := stem + strconv.Itoa(i) + ext
		if !taken[name] {
			return name
		}
	}
}

// Lookup implements lightbox.ImageLocator.
func (r *ImageRegistry) Lookup(uri string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.names[uri]
	return name, ok
}

// Len returns the number of images with a published name.
func (r *ImageRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.names)
}

// CopyTo copies every assigned image from sourceDir into dir under its
// published name.
func (r *ImageRegistry) CopyTo(sourceDir, dir string) error {
	r.mu.Lock()
	names := make(map[string]string, len(r.names))
	for k, v := range r.names {
		names[k] = v
	}
	r.mu.Unlock()

	for src, name := range names {
		from := filepath.Join(sourceDir, filepath.FromSlash(src))
		if err := fileutil.CopyFile(from, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("%w: copying image %s: %v", ErrWriteOutput, src, err)
		}
	}
	return nil
}

// Compile-time interface checks.
var (
	_ lightbox.AssetTracker = (*ImageRegistry)(nil)
	_ lightbox.ImageLocator = (*ImageRegistry)(nil)
)

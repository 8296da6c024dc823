package lightbox

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IsRemote reports whether raw is an http or https URL. Remote images skip
// path validation and asset tracking entirely.
func IsRemote(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ResolveImagePath resolves raw against the directory of docName and
// verifies the result is an existing file strictly inside sourceDir.
//
// A leading "/" makes raw relative to the source root. The returned path is
// source-relative and slash separated. Failures wrap ErrPathTraversal or
// ErrImageNotFound.
func ResolveImagePath(raw, docName, sourceDir string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty path", ErrImageNotFound)
	}

	slashed := strings.ReplaceAll(raw, "\\", "/")
	var candidate string
	if strings.HasPrefix(slashed, "/") {
		candidate = path.Clean(strings.TrimLeft(slashed, "/"))
	} else {
		candidate = path.Join(path.Dir(docName), slashed)
	}

	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathTraversal, err)
	}
	target := filepath.Join(root, filepath.FromSlash(candidate))

	rel, err := containedRel(root, target)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, raw)
	}

	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrImageNotFound, raw)
	}

	// A symlink inside the root may still point outside it.
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		realRoot = root
	}
	realTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrImageNotFound, raw)
	}
	if _, err := containedRel(realRoot, realTarget); err != nil {
		return "", fmt.Errorf("%w: %s", err, raw)
	}

	return filepath.ToSlash(rel), nil
}

// containedRel returns target relative to root, or ErrPathTraversal when
// target is root itself or lies outside it. The comparison is per path
// component, so "docs-secret" never passes for root "docs".
func containedRel(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", ErrPathTraversal
	}
	if rel == "." || rel == ".." || filepath.IsAbs(rel) ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}
	return rel, nil
}

// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-lightbox/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/lightbox.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), ".config/go-lightbox") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForAssetPath returns hints for an unusable custom asset directory.
func ForAssetPath() string {
	return format("--asset-path must be an existing directory holding lightbox.css, lightbox.js or page styles")
}

// ForNoDocuments returns hints when discovery finds no Markdown sources.
func ForNoDocuments(sourceDir string) string {
	return format("no .md or .markdown files under " + sourceDir + "; check source.dir and source.exclude")
}

// ForWarnings returns hints when warnings fail the build.
func ForWarnings(categories []string) string {
	var hints []string
	hints = append(hints, "fix the warnings above or drop --fail-on-warning")
	if len(categories) > 0 {
		hints = append(hints, "to silence them add to build.suppressWarnings: "+strings.Join(categories, ", "))
	}
	return formatHints(hints)
}

// slashed normalizes separators so Windows paths match too.
func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

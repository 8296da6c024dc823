package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-lightbox/internal/fileutil"
	"github.com/alnah/go-lightbox/internal/logging"
	"github.com/alnah/go-lightbox/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "lightbox"

// Field limits.
const (
	MaxNameLength    = 100
	MaxTitleLength   = 200
	MaxPathLength    = 4096
	MaxPatternLength = 256
	MaxPatterns      = 100
	MaxWorkers       = 64
)

// Output formats the host build can write.
const (
	FormatHTML       = "html"
	FormatSingleHTML = "singlehtml"
	FormatLaTeX      = "latex"
	FormatText       = "text"
)

// Formats lists every supported output format in build order.
var Formats = []string{FormatHTML, FormatSingleHTML, FormatLaTeX, FormatText}

// Config holds all configuration for a documentation build.
type Config struct {
	Project ProjectConfig  `yaml:"project"`
	Source  SourceConfig   `yaml:"source"`
	Output  OutputConfig   `yaml:"output"`
	Build   BuildConfig    `yaml:"build"`
	HTML    HTMLConfig     `yaml:"html"`
	LaTeX   LaTeXConfig    `yaml:"latex"`
	Log     logging.Config `yaml:"log"`
}

// ProjectConfig names the documentation project.
type ProjectConfig struct {
	Name   string `yaml:"name"` // Used for the LaTeX file name and page titles
	Author string `yaml:"author"`
}

// SourceConfig defines where Markdown sources are read from.
type SourceConfig struct {
	Dir     string   `yaml:"dir"`     // Source root; images must live inside it
	Exclude []string `yaml:"exclude"` // Glob patterns matched against slash-relative paths
}

// OutputConfig defines the build output.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`     // Default "_build"
	Formats []string `yaml:"formats"` // Default ["html"]
}

// BuildConfig controls the read and write phases.
type BuildConfig struct {
	Workers          int      `yaml:"workers"`          // 0 = GOMAXPROCS
	SuppressWarnings []string `yaml:"suppressWarnings"` // "lightbox" or "lightbox.<subtype>"
	FailOnWarning    bool     `yaml:"failOnWarning"`
}

// HTMLConfig defines HTML page options.
type HTMLConfig struct {
	Style     string `yaml:"style"`     // Page style name or path; empty = default
	AssetPath string `yaml:"assetPath"` // Directory overriding embedded assets by name
	Title     string `yaml:"title"`     // Page title suffix; default project name
}

// LaTeXConfig defines the LaTeX preamble.
type LaTeXConfig struct {
	PaperSize     string `yaml:"paperSize"`     // "a4paper" or "letterpaper"
	PointSize     string `yaml:"pointSize"`     // "10pt", "11pt" or "12pt"
	DocumentClass string `yaml:"documentClass"` // Default "article"
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("project.name", c.Project.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("project.author", c.Project.Author, MaxNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("source.dir", c.Source.Dir, MaxPathLength); err != nil {
		return err
	}
	if len(c.Source.Exclude) > MaxPatterns {
		return fmt.Errorf("%w: source.exclude has %d patterns (max %d)", ErrInvalidValue, len(c.Source.Exclude), MaxPatterns)
	}
	for i, p := range c.Source.Exclude {
		if err := validateFieldLength(fmt.Sprintf("source.exclude[%d]", i), p, MaxPatternLength); err != nil {
			return err
		}
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: source.exclude[%d]: bad pattern %q", ErrInvalidValue, i, p)
		}
	}

	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	for i, f := range c.Output.Formats {
		if !isFormat(f) {
			return fmt.Errorf("%w: output.formats[%d]: unknown format %q (must be one of %s)",
				ErrInvalidValue, i, f, strings.Join(Formats, ", "))
		}
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}
	for i, s := range c.Build.SuppressWarnings {
		if err := validateFieldLength(fmt.Sprintf("build.suppressWarnings[%d]", i), s, MaxNameLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("html.style", c.HTML.Style, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("html.assetPath", c.HTML.AssetPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("html.title", c.HTML.Title, MaxTitleLength); err != nil {
		return err
	}

	switch c.LaTeX.PaperSize {
	case "", "a4paper", "letterpaper", "a5paper", "legalpaper":
	default:
		return fmt.Errorf("%w: latex.paperSize %q (must be a4paper, a5paper, letterpaper or legalpaper)", ErrInvalidValue, c.LaTeX.PaperSize)
	}
	switch c.LaTeX.PointSize {
	case "", "10pt", "11pt", "12pt":
	default:
		return fmt.Errorf("%w: latex.pointSize %q (must be 10pt, 11pt or 12pt)", ErrInvalidValue, c.LaTeX.PointSize)
	}
	if err := validateFieldLength("latex.documentClass", c.LaTeX.DocumentClass, MaxNameLength); err != nil {
		return err
	}

	if err := validateFieldLength("log.file", c.Log.File, MaxPathLength); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func isFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{Name: "Documentation"},
		Source:  SourceConfig{Dir: "."},
		Output:  OutputConfig{Dir: "_build", Formats: []string{FormatHTML}},
		LaTeX:   LaTeXConfig{PaperSize: "a4paper", PointSize: "11pt", DocumentClass: "article"},
		Log:     logging.Config{Level: "info", Format: logging.FormatConsole},
	}
}

// ApplyDefaults fills empty fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.Project.Name == "" {
		c.Project.Name = def.Project.Name
	}
	if c.Source.Dir == "" {
		c.Source.Dir = def.Source.Dir
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = def.Output.Formats
	}
	if c.HTML.Title == "" {
		c.HTML.Title = c.Project.Name
	}
	if c.LaTeX.PaperSize == "" {
		c.LaTeX.PaperSize = def.LaTeX.PaperSize
	}
	if c.LaTeX.PointSize == "" {
		c.LaTeX.PointSize = def.LaTeX.PointSize
	}
	if c.LaTeX.DocumentClass == "" {
		c.LaTeX.DocumentClass = def.LaTeX.DocumentClass
	}
}

// Dump renders the configuration as YAML in the same shape LoadConfig reads.
func (c *Config) Dump() ([]byte, error) {
	return yamlutil.Encode(c)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-lightbox/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-lightbox", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

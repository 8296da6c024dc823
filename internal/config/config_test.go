package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-lightbox/internal/logging"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Output.Dir != "_build" {
		t.Errorf("Output.Dir = %q, want _build", cfg.Output.Dir)
	}
	if len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != FormatHTML {
		t.Errorf("Output.Formats = %v, want [html]", cfg.Output.Formats)
	}
	if cfg.Build.FailOnWarning {
		t.Error("Build.FailOnWarning = true, want false")
	}
	if cfg.LaTeX.DocumentClass != "article" {
		t.Errorf("LaTeX.DocumentClass = %q, want article", cfg.LaTeX.DocumentClass)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Project: ProjectConfig{Name: "Guide"},
		Output:  OutputConfig{Formats: []string{FormatLaTeX}},
		LaTeX:   LaTeXConfig{PointSize: "12pt"},
	}
	cfg.ApplyDefaults()

	if cfg.Source.Dir != "." || cfg.Output.Dir != "_build" {
		t.Errorf("dirs = %q, %q", cfg.Source.Dir, cfg.Output.Dir)
	}
	if cfg.Output.Formats[0] != FormatLaTeX {
		t.Errorf("configured formats overwritten: %v", cfg.Output.Formats)
	}
	if cfg.HTML.Title != "Guide" {
		t.Errorf("HTML.Title = %q, want project name", cfg.HTML.Title)
	}
	if cfg.LaTeX.PointSize != "12pt" || cfg.LaTeX.PaperSize != "a4paper" {
		t.Errorf("latex = %+v", cfg.LaTeX)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "project name too long",
			mutate:  func(c *Config) { c.Project.Name = strings.Repeat("a", MaxNameLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Output.Formats = []string{"html", "pdf"} },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "all formats",
			mutate: func(c *Config) { c.Output.Formats = Formats },
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Build.Workers = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Build.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "bad exclude pattern",
			mutate:  func(c *Config) { c.Source.Exclude = []string{"[unclosed"} },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "exclude globs",
			mutate: func(c *Config) { c.Source.Exclude = []string{"drafts/*", "*.tmp.md"} },
		},
		{
			name:    "paper size",
			mutate:  func(c *Config) { c.LaTeX.PaperSize = "b4paper" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "point size",
			mutate:  func(c *Config) { c.LaTeX.PointSize = "14pt" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: logging.ErrInvalidLevel,
		},
		{
			name:    "log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: logging.ErrInvalidFormat,
		},
		{
			name:    "suppress entry too long",
			mutate:  func(c *Config) { c.Build.SuppressWarnings = []string{strings.Repeat("x", MaxNameLength+1)} },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, "lightbox.yaml")
		content := `project:
  name: "Field Guide"
source:
  dir: docs
  exclude: ["drafts/*"]
output:
  dir: out
  formats: [html, latex]
build:
  workers: 4
  suppressWarnings: [lightbox.image_dimensions]
  failOnWarning: true
latex:
  paperSize: letterpaper
log:
  level: debug
  format: json
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Project.Name != "Field Guide" || cfg.Source.Dir != "docs" || cfg.Output.Dir != "out" {
			t.Errorf("cfg = %+v", cfg)
		}
		if strings.Join(cfg.Output.Formats, ",") != "html,latex" {
			t.Errorf("Output.Formats = %v", cfg.Output.Formats)
		}
		if cfg.Build.Workers != 4 || !cfg.Build.FailOnWarning {
			t.Errorf("Build = %+v", cfg.Build)
		}
		if len(cfg.Build.SuppressWarnings) != 1 || cfg.Build.SuppressWarnings[0] != "lightbox.image_dimensions" {
			t.Errorf("SuppressWarnings = %v", cfg.Build.SuppressWarnings)
		}
		if cfg.LaTeX.PaperSize != "letterpaper" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("latex/log = %+v / %+v", cfg.LaTeX, cfg.Log)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig("/nonexistent/path/lightbox.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound with tried paths", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("no-such-config-name-xyz")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-name-xyz.yaml") {
			t.Errorf("error does not list tried paths: %v", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("project: [unclosed"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := LoadConfig(configPath); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), "strict.yaml")
		if err := os.WriteFile(configPath, []byte("html:\n  theme: dark\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := LoadConfig(configPath); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()
		configPath := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(configPath, []byte("output:\n  formats: [pdf]\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestConfig_Dump(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Source.Exclude = []string{"drafts/*"}
	cfg.Build.SuppressWarnings = []string{"lightbox.image_not_found"}
	cfg.ApplyDefaults()

	data, err := cfg.Dump()
	if err != nil {
		t.Fatalf("Dump() error: %v", err)
	}

	tests := []string{
		"project:",
		"name: Documentation",
		"- drafts/*",
		"suppressWarnings:",
		"- lightbox.image_not_found",
		"paperSize: a4paper",
	}
	for _, want := range tests {
		if !strings.Contains(string(data), want) {
			t.Errorf("Dump() missing %q:\n%s", want, data)
		}
	}

	// The dump must load back through the strict loader.
	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(dump) error: %v", err)
	}
	if got.Build.SuppressWarnings[0] != "lightbox.image_not_found" || got.Source.Exclude[0] != "drafts/*" {
		t.Errorf("reloaded config = %+v", got)
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"lightbox", false},
		{"lightbox.yaml", true},
		{"conf.yml", true},
		{"./lightbox", true},
		{`dir\lightbox`, true},
	}
	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

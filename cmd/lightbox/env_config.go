package main

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-lightbox/internal/config"
)

const envPrefix = "LIGHTBOX_"

// knownEnvVars lists every LIGHTBOX_* variable the CLI reads.
var knownEnvVars = map[string]bool{
	"LIGHTBOX_CONFIG":            true,
	"LIGHTBOX_OUTPUT_DIR":        true,
	"LIGHTBOX_BUILDERS":          true,
	"LIGHTBOX_WORKERS":           true,
	"LIGHTBOX_STYLE":             true,
	"LIGHTBOX_ASSET_PATH":        true,
	"LIGHTBOX_SUPPRESS_WARNINGS": true,
	"LIGHTBOX_LOG_LEVEL":         true,
	"LIGHTBOX_LOG_FORMAT":        true,
	"LIGHTBOX_LOG_FILE":          true,
}

// envConfig holds configuration read from environment variables.
type envConfig struct {
	Config    string
	OutputDir string
	Builders  []string
	Workers   int
	Style     string
	AssetPath string
	Suppress  []string
	LogLevel  string
	LogFormat string
	LogFile   string
}

// loadEnvConfig reads LIGHTBOX_* variables through getenv.
// Malformed numbers are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		Config:    getenv("LIGHTBOX_CONFIG"),
		OutputDir: getenv("LIGHTBOX_OUTPUT_DIR"),
		Builders:  splitList(getenv("LIGHTBOX_BUILDERS")),
		Style:     getenv("LIGHTBOX_STYLE"),
		AssetPath: getenv("LIGHTBOX_ASSET_PATH"),
		Suppress:  splitList(getenv("LIGHTBOX_SUPPRESS_WARNINGS")),
		LogLevel:  getenv("LIGHTBOX_LOG_LEVEL"),
		LogFormat: getenv("LIGHTBOX_LOG_FORMAT"),
		LogFile:   getenv("LIGHTBOX_LOG_FILE"),
	}

	if workers := getenv("LIGHTBOX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// warnUnknownEnvVars logs a warning for each unrecognized LIGHTBOX_* variable.
// Helps catch typos like LIGHTBOX_WORKER instead of LIGHTBOX_WORKERS.
func warnUnknownEnvVars(environ []string, logger *zap.Logger) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", zap.String("name", name))
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if len(env.Builders) > 0 {
		cfg.Output.Formats = normalizeFormats(env.Builders)
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
	if len(env.Suppress) > 0 {
		cfg.Build.SuppressWarnings = append(cfg.Build.SuppressWarnings, env.Suppress...)
	}

	if env.Style != "" {
		cfg.HTML.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.HTML.AssetPath = env.AssetPath
	}

	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
}

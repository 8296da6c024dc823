package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-lightbox/internal/config"
)

// Sentinel errors for command-line handling.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// Log levels set by --quiet and --verbose.
const (
	quietLogLevel   = "warn"
	verboseLogLevel = "debug"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// logFlags holds logger flags.
type logFlags struct {
	format string
	file   string
}

// htmlFlags holds HTML page flags.
type htmlFlags struct {
	style     string
	assetPath string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common        commonFlags
	output        string
	builders      []string
	workers       int
	failOnWarning bool
	suppress      []string
	html          htmlFlags
	log           logFlags
}

// addCommonFlags adds config and verbosity flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addHTMLFlags adds page style flags to a FlagSet.
func addHTMLFlags(fs *flag.FlagSet, f *htmlFlags) {
	fs.StringVar(&f.style, "style", "", "page style name or CSS file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding embedded styles, templates and static files")
}

// addLogFlags adds logger flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.format, "log-format", "", "console log format: console, json")
	fs.StringVar(&f.file, "log-file", "", "also write JSON logs to this rotated file")
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage and parse errors are written to w.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringSliceVarP(&f.builders, "builder", "b", nil, "output formats: "+strings.Join(config.Formats, ", "))
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel readers (0 = auto)")
	fs.BoolVarP(&f.failOnWarning, "fail-on-warning", "W", false, "exit with an error when warnings occur")
	fs.StringSliceVar(&f.suppress, "suppress", nil, "suppress warnings by type or type.subtype")

	addCommonFlags(fs, &f.common)
	addHTMLFlags(fs, &f.html)
	addLogFlags(fs, &f.log)

	fs.Usage = func() { printBuildUsage(w) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return f, fs.Args(), nil
}

// validateWorkers rejects worker counts outside 0..config.MaxWorkers.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(f *buildFlags, positional []string, cfg *config.Config) {
	if len(positional) > 0 {
		cfg.Source.Dir = positional[0]
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if len(f.builders) > 0 {
		cfg.Output.Formats = normalizeFormats(f.builders)
	}

	// Only override if explicitly set (> 0)
	if f.workers > 0 {
		cfg.Build.Workers = f.workers
	}
	// Only override if true: the flag cannot turn off a config setting
	if f.failOnWarning {
		cfg.Build.FailOnWarning = true
	}
	if len(f.suppress) > 0 {
		cfg.Build.SuppressWarnings = append(cfg.Build.SuppressWarnings, f.suppress...)
	}

	if f.html.style != "" {
		cfg.HTML.Style = f.html.style
	}
	if f.html.assetPath != "" {
		cfg.HTML.AssetPath = f.html.assetPath
	}

	if f.log.format != "" {
		cfg.Log.Format = f.log.format
	}
	if f.log.file != "" {
		cfg.Log.File = f.log.file
	}
	// Verbose wins when both are given
	switch {
	case f.common.verbose:
		cfg.Log.Level = verboseLogLevel
	case f.common.quiet:
		cfg.Log.Level = quietLogLevel
	}
}

// normalizeFormats lowercases and trims format names and drops duplicates
// and blanks, keeping first occurrence order.
func normalizeFormats(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

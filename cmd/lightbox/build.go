package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	lightbox "github.com/alnah/go-lightbox"
	"github.com/alnah/go-lightbox/internal/config"
	"github.com/alnah/go-lightbox/internal/fileutil"
	"github.com/alnah/go-lightbox/internal/hints"
	"github.com/alnah/go-lightbox/internal/logging"
	"github.com/alnah/go-lightbox/internal/site"
)

// ErrWarningsAsErrors is returned when --fail-on-warning is set and the
// build reported warnings.
var ErrWarningsAsErrors = errors.New("warnings treated as errors")

// runBuild runs the build command.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one source directory, got %d", ErrUsage, len(positional))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.Config
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}

	// Environment first, then CLI flags (CLI wins)
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, positional, cfg)

	setMaxProcs(flags.common.verbose, env.Stderr)

	logger, closeLog, err := logging.New(cfg.Log, env.Stderr)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	defer func() { _ = closeLog() }()
	warnUnknownEnvVars(env.Environ(), logger)
	if data, err := cfg.Dump(); err == nil {
		logger.Debug("effective config", zap.ByteString("config", data))
	}

	opts := []site.Option{
		site.WithLogger(logger),
		site.WithReporter(lightbox.NewLogReporter(logger)),
	}
	if env.Prober != nil {
		opts = append(opts, site.WithProber(env.Prober))
	}
	builder, err := site.New(cfg, opts...)
	if err != nil {
		return err
	}

	res, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	if !flags.common.quiet {
		printSummary(env.Stdout, res)
	}

	if cfg.Build.FailOnWarning && res.Warnings() > 0 {
		return fmt.Errorf("%w: %d warning(s)%s", ErrWarningsAsErrors, res.Warnings(), hints.ForWarnings(res.Categories()))
	}
	return nil
}

// loadConfig loads the named config. With no name it looks up the default
// name and falls back to the built-in defaults when that is not found.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		cfg, err := config.LoadConfig(config.DefaultName)
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(configSearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configSearchPaths lists where a config name is looked up, for hints.
// A path is only looked up where it points.
func configSearchPaths(name string) []string {
	if fileutil.IsFilePath(name) || filepath.Ext(name) != "" {
		return []string{name}
	}
	paths := []string{name + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-lightbox", name+".yaml"))
	}
	return paths
}

// setMaxProcs configures GOMAXPROCS, logging the decision only in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// printSummary prints the build outcome and each output directory in
// format order.
func printSummary(w io.Writer, res *site.Result) {
	fmt.Fprintf(w, "build succeeded, %d warning(s).\n", res.Warnings())
	fmt.Fprintf(w, "%d document(s), %d image(s)\n", res.Documents, res.Images)
	for _, format := range config.Formats {
		if dir, ok := res.Outputs[format]; ok {
			fmt.Fprintf(w, "  %-10s %s\n", format, dir)
		}
	}
}

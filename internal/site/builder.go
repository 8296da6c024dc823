package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	lightbox "github.com/alnah/go-lightbox"
	"github.com/alnah/go-lightbox/internal/assets"
	"github.com/alnah/go-lightbox/internal/config"
	"github.com/alnah/go-lightbox/internal/pipeline"
)

// Sentinel errors for the build.
var (
	ErrNilConfig     = errors.New("config is nil")
	ErrReadSource    = errors.New("reading source failed")
	ErrWriteOutput   = errors.New("writing output failed")
	ErrUnknownFormat = errors.New("unknown output format")
)

// Option configures a Builder.
type Option func(*Builder)

// WithAssets sets the loader for templates, styles and static files.
// The default resolves html.assetPath over the embedded assets.
func WithAssets(loader assets.AssetLoader) Option {
	return func(b *Builder) { b.assets = loader }
}

// WithReporter adds a reporter that receives every unsuppressed diagnostic
// as it is found.
func WithReporter(r lightbox.Reporter) Option {
	return func(b *Builder) { b.reporter = r }
}

// WithLogger sets the build logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithProber replaces the image dimension prober.
func WithProber(p lightbox.Prober) Option {
	return func(b *Builder) { b.prober = p }
}

// Builder runs documentation builds for one configuration.
type Builder struct {
	cfg      config.Config
	assets   assets.AssetLoader
	reporter lightbox.Reporter
	logger   *zap.Logger
	prober   lightbox.Prober
	workers  int
}

// New creates a Builder. cfg is copied and its defaults applied.
func New(cfg *config.Config, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	b := &Builder{cfg: *cfg}
	b.cfg.ApplyDefaults()
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.assets == nil {
		resolver, err := assets.NewAssetResolver(b.cfg.HTML.AssetPath)
		if err != nil {
			return nil, fmt.Errorf("html.assetPath: %w", err)
		}
		b.assets = resolver
		if p := resolver.CustomPath(); p != "" {
			b.logger.Debug("using custom assets", zap.String("assetPath", p))
		}
	}
	b.workers = ResolveWorkers(b.cfg.Build.Workers)
	return b, nil
}

// Result summarizes a finished build.
type Result struct {
	// Outputs maps each written format to its output directory.
	Outputs map[string]string
	// Documents is the number of documents read.
	Documents int
	// Images is the number of distinct images published.
	Images int
	// Diagnostics holds every unsuppressed diagnostic, ordered by location.
	Diagnostics []lightbox.Diagnostic
}

// Warnings returns the number of diagnostics.
func (r *Result) Warnings() int {
	return len(r.Diagnostics)
}

// Categories returns the distinct diagnostic categories, sorted.
func (r *Result) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.Diagnostics {
		c := d.Category()
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Build reads every document and writes each configured format.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	sources, err := Discover(b.cfg.Source.Dir, b.excludes())
	if err != nil {
		return nil, err
	}
	b.logger.Info("reading documents",
		zap.Int("documents", len(sources)),
		zap.Int("workers", b.workers),
		zap.String("source", b.cfg.Source.Dir))

	collected := &lightbox.DiagnosticCollector{}
	reporter := lightbox.Filter(lightbox.Tee(collected, b.reporter), b.cfg.Build.SuppressWarnings)

	registry := NewImageRegistry()
	docs, err := b.read(ctx, sources, registry, reporter)
	if err != nil {
		return nil, err
	}
	registry.Assign()

	res := &Result{
		Outputs:   make(map[string]string, len(b.cfg.Output.Formats)),
		Documents: len(docs),
		Images:    registry.Len(),
	}
	for _, format := range b.cfg.Output.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir, err := b.write(ctx, format, docs, registry)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", format, err)
		}
		res.Outputs[format] = dir
		b.logger.Info("build finished", zap.String("format", format), zap.String("output", dir))
	}

	res.Diagnostics = collected.Diagnostics()
	sort.SliceStable(res.Diagnostics, func(i, j int) bool {
		a, c := res.Diagnostics[i], res.Diagnostics[j]
		if a.DocName != c.DocName {
			return a.DocName < c.DocName
		}
		return a.Line < c.Line
	})
	return res, nil
}

// excludes adds the output directory to the configured globs when it lies
// inside the source tree.
func (b *Builder) excludes() []string {
	out := append([]string(nil), b.cfg.Source.Exclude...)
	src, err1 := filepath.Abs(b.cfg.Source.Dir)
	dst, err2 := filepath.Abs(b.cfg.Output.Dir)
	if err1 != nil || err2 != nil {
		return out
	}
	rel, err := filepath.Rel(src, dst)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return out
	}
	return append(out, filepath.ToSlash(rel))
}

// read parses every source in parallel. Each document gets its own
// Environment; the registry and reporter are shared.
func (b *Builder) read(ctx context.Context, sources []Source, registry *ImageRegistry, reporter lightbox.Reporter) ([]*pipeline.Document, error) {
	parser := pipeline.NewParser(b.extensionOptions()...)
	docs := make([]*pipeline.Document, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(src.Path) // #nosec G304 -- path comes from Discover
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrReadSource, src.Name, err)
			}

			env := lightbox.NewEnvironment(src.Name, b.cfg.Source.Dir)
			env.Assets = registry
			env.Reporter = reporter

			doc, err := parser.Parse(gctx, data, env)
			if err != nil {
				return fmt.Errorf("reading %s: %w", src.Name, err)
			}
			collectImages(doc, b.cfg.Source.Dir, registry, reporter)
			docs[i] = doc
			b.logger.Debug("read document", zap.String("doc", src.Name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (b *Builder) extensionOptions() []lightbox.Option {
	opts := []lightbox.Option{lightbox.WithSourceDir(b.cfg.Source.Dir)}
	if b.prober != nil {
		opts = append(opts, lightbox.WithProber(b.prober))
	}
	return opts
}

func (b *Builder) write(ctx context.Context, format string, docs []*pipeline.Document, registry *ImageRegistry) (string, error) {
	dir := filepath.Join(b.cfg.Output.Dir, format)
	var err error
	switch format {
	case config.FormatHTML:
		err = b.writeHTML(ctx, dir, docs, registry)
	case config.FormatSingleHTML:
		err = b.writeSingleHTML(ctx, dir, docs, registry)
	case config.FormatLaTeX:
		err = b.writeLaTeX(ctx, dir, docs, registry)
	case config.FormatText:
		err = b.writeText(ctx, dir, docs)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", err
	}
	return dir, nil
}

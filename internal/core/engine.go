package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/darkawower/fsextra/internal/config"
	"github.com/darkawower/fsextra/internal/logging"
	"github.com/darkawower/fsextra/internal/metadata"
	"github.com/darkawower/fsextra/internal/platform"
)

// Engine answers metadata queries and drives the native file manager.
type Engine struct {
	config *config.Config
	meta   *metadata.Service
	files  platform.FileManagerService
	logger *zap.Logger

	// Options
	fsys        metadata.FileSystem
	concurrency int
}

// Option is a function that configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithFileSystem replaces the filesystem used for metadata lookups.
func WithFileSystem(fsys metadata.FileSystem) Option {
	return func(e *Engine) {
		e.fsys = fsys
	}
}

// WithFileManager replaces the native file manager, e.g. with a recorder for dry runs.
func WithFileManager(svc platform.FileManagerService) Option {
	return func(e *Engine) {
		e.files = svc
	}
}

// WithConcurrency overrides the configured number of parallel lookups.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// New creates a new Engine. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	e := &Engine{
		config:      cfg,
		logger:      logging.Nop(),
		fsys:        metadata.OS,
		concurrency: cfg.Metadata.Concurrency,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.concurrency < 1 {
		e.concurrency = 1
	}
	e.meta = metadata.NewService(e.fsys)
	if e.files == nil {
		e.files = platform.New(platform.WithProgram(cfg.Reveal.Launcher))
	}

	return e
}

// Metadata reports existence, type and size of path.
func (e *Engine) Metadata(ctx context.Context, path string) (metadata.Result, error) {
	start := time.Now()

	result, err := e.meta.Metadata(ctx, path)
	if err != nil {
		e.logger.Debug("metadata failed", logging.Path(path), logging.Err(err))
		return metadata.Result{}, err
	}

	e.logger.Debug("metadata computed",
		logging.Path(path),
		logging.Size(result.Size),
		zap.String("kind", string(KindOf(result))),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

// MetadataAll looks up every path concurrently. A failure is recorded in its
// report and does not stop the other lookups. Reports keep the input order.
func (e *Engine) MetadataAll(ctx context.Context, paths []string) []PathReport {
	reports := make([]PathReport, len(paths))

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			result, err := e.Metadata(ctx, path)
			reports[i] = PathReport{Path: path, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// DefaultFinder returns the configured default for View's finder flag.
func (e *Engine) DefaultFinder() bool {
	return e.config.Reveal.Finder
}

// View reveals path in the file manager when finder is true, otherwise opens it.
func (e *Engine) View(path string, finder bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	req := platform.ViewRequest{Path: absPath, Finder: finder}
	if err := e.files.View(req); err != nil {
		e.logger.Debug("view failed", logging.Path(absPath), zap.Bool("finder", finder), logging.Err(err))
		return err
	}

	e.logger.Debug("view started", logging.Path(absPath), zap.Bool("finder", finder))
	return nil
}

// Reveal selects path in its parent folder.
func (e *Engine) Reveal(path string) error {
	return e.View(path, true)
}

// Open opens path with its default application.
func (e *Engine) Open(path string) error {
	return e.View(path, false)
}

// Config returns the engine configuration.
func (e *Engine) Config() *config.Config {
	return e.config
}

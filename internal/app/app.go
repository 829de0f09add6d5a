package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/pathgraph/internal/config"
	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/location"
)

// PipelineLoader produces the pipeline configuration from a set of config
// paths. *config.Loader is the production implementation.
type PipelineLoader interface {
	Load(ctx context.Context, paths ...string) (*config.Pipeline, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	pipeline *config.Pipeline
	alloc    *location.IDAllocator

	newRunID func() string
	now      func() time.Time
}

// NewApp builds an App with its own isolated logger and ID allocator and
// loads the pipeline configuration named by cfg. A nil loader means a
// config.Loader reading cfg.EnvFile.
func NewApp(outW io.Writer, cfg *Config, loader PipelineLoader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = config.NewLoader(cfg.EnvFile)
	}
	pipeline, err := loader.Load(ctx, cfg.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Pipeline configuration ready.",
		"input", pipeline.Input.Format, "output", pipeline.Output.Format,
		"mode", pipeline.Optimize.Mode, "vertical", pipeline.Optimize.Vertical)

	return &App{
		outW:     outW,
		logger:   logger,
		pipeline: pipeline,
		alloc:    location.NewIDAllocator(),
		newRunID: uuid.NewString,
		now:      time.Now,
	}, nil
}

// Pipeline returns the loaded pipeline configuration. This is primarily for
// testing.
func (a *App) Pipeline() *config.Pipeline {
	return a.pipeline
}

// Allocator returns the location ID allocator shared by every run of a.
func (a *App) Allocator() *location.IDAllocator {
	return a.alloc
}

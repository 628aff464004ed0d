// Package app implements the application layer for unbundle.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/unbundle/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	graphLoader  ports.GraphLoader
	resolvers    ports.ResolverFactory
	manifests    ports.ManifestReader
	copier       ports.TreeCopier
	writer       ports.OutputWriter
	logger       ports.Logger
	tracer       ports.Tracer
	renderer     ports.Renderer
	watcher      ports.Watcher
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	graphLoader ports.GraphLoader,
	resolvers ports.ResolverFactory,
	manifests ports.ManifestReader,
	copier ports.TreeCopier,
	writer ports.OutputWriter,
	log ports.Logger,
	tracer ports.Tracer,
	renderer ports.Renderer,
	watcher ports.Watcher,
) *App {
	return &App{
		configLoader: configLoader,
		graphLoader:  graphLoader,
		resolvers:    resolvers,
		manifests:    manifests,
		copier:       copier,
		writer:       writer,
		logger:       log,
		tracer:       tracer,
		renderer:     renderer,
		watcher:      watcher,
	}
}

// BuildOptions configures the Build method.
type BuildOptions struct {
	// Dir is the directory the configuration is discovered from. Empty means the working directory.
	Dir string
	// ConfigPath points at an explicit configuration file.
	ConfigPath string
	// Watch keeps rebuilding on source changes until the context is cancelled.
	Watch bool
	// NoVendor disables the dependency closure copy regardless of configuration.
	NoVendor bool
}

// Build runs one build pass, or a pass per change set in watch mode.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, err := a.loadConfig(opts.Dir, opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.NoVendor && cfg.CopyNodeModules {
		c := *cfg
		c.CopyNodeModules = false
		cfg = &c
	}

	resolver := a.resolvers.NewResolver(cfg)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.renderer.Start(ctx)
	})

	g.Go(func() error {
		defer func() {
			_ = a.renderer.Stop()
		}()

		if _, err := a.pass(ctx, cfg, resolver); err != nil {
			if !opts.Watch {
				return zerr.Wrap(err, domain.ErrBuildFailed.Error())
			}
			a.logger.Error(err)
		}
		if !opts.Watch {
			return nil
		}
		return a.watch(ctx, cfg, resolver)
	})

	return g.Wait()
}

// pass runs load, partition, render and emit with a fresh pipeline.
func (a *App) pass(ctx context.Context, cfg *domain.Config, resolver ports.PathResolver) (*pipeline.EmitReport, error) {
	ctx, span := a.tracer.Start(ctx, "build", ports.WithAttribute("target", cfg.TargetRoot))
	defer span.End()

	p := pipeline.New(cfg, resolver, a.manifests, a.copier, a.writer, a.logger)

	var (
		graph  *domain.ModuleGraph
		units  *domain.UnitSet
		tree   *domain.OutputTree
		report *pipeline.EmitReport
	)

	err := a.phase(ctx, "load", func(ctx context.Context) (err error) {
		graph, err = a.graphLoader.Load(ctx, cfg)
		return err
	})
	if err == nil {
		err = a.phase(ctx, "partition", func(ctx context.Context) (err error) {
			units, err = p.Partition(ctx, graph)
			return err
		})
	}
	if err == nil {
		err = a.phase(ctx, "render", func(ctx context.Context) (err error) {
			tree, err = p.RenderAll(ctx)
			return err
		})
	}
	if err == nil {
		err = a.phase(ctx, "emit", func(ctx context.Context) (err error) {
			report, err = p.Emit(ctx, tree)
			return err
		})
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("units", units.Len())
	a.logger.Info(summary(report, cfg.TargetRoot))
	return report, nil
}

// phase runs fn inside a child span named name.
func (a *App) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := a.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// watch rebuilds after every relevant change set until ctx is cancelled.
func (a *App) watch(ctx context.Context, cfg *domain.Config, resolver ports.PathResolver) error {
	if err := a.watcher.Start(ctx, cfg.ProjectRoot); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "root", cfg.ProjectRoot)
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info(fmt.Sprintf("watching %s for changes", cfg.ProjectRoot))

	for batch := range a.watcher.Batches() {
		if ctx.Err() != nil {
			return nil
		}
		changed := relevantChanges(cfg, batch)
		if len(changed) == 0 {
			continue
		}
		a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(changed)))
		if _, err := a.pass(ctx, cfg, resolver); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			a.logger.Error(err)
		}
	}
	return nil
}

// relevantChanges drops events produced by the build itself.
func relevantChanges(cfg *domain.Config, batch []ports.WatchEvent) []ports.WatchEvent {
	out := make([]ports.WatchEvent, 0, len(batch))
	for _, ev := range batch {
		if pipeline.IsWithin(cfg.TargetRoot, ev.Path) {
			continue
		}
		if slices.Contains(strings.Split(filepath.ToSlash(ev.Path), "/"), domain.StateDirName) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// CleanOptions configures the Clean method.
type CleanOptions struct {
	// Dir is the directory the configuration is discovered from. Empty means the working directory.
	Dir string
	// ConfigPath points at an explicit configuration file.
	ConfigPath string
	// All also removes the whole target root.
	All bool
}

// Clean removes the emit record store and, with All, the target root.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.loadConfig(opts.Dir, opts.ConfigPath)
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if opts.All {
		remove(cfg.TargetRoot, "output directory")
		return errs
	}
	remove(filepath.Join(cfg.TargetRoot, domain.StateDirName), "emit record store")
	return errs
}

func (a *App) loadConfig(dir, path string) (*domain.Config, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = wd
	}
	cfg, err := a.configLoader.Load(dir, path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func summary(r *pipeline.EmitReport, target string) string {
	msg := fmt.Sprintf("emitted %d units and %d manifests to %s", r.Units, r.Manifests, target)
	if r.Unchanged > 0 {
		msg += fmt.Sprintf(" (%d unchanged)", r.Unchanged)
	}
	if len(r.Packages) > 0 {
		msg += fmt.Sprintf(", vendored %d packages", len(r.Packages))
	}
	return msg
}

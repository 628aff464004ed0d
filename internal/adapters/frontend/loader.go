// Package frontend implements a reference front-end that compiles a CommonJS
// project into a module graph by scanning loader calls.
package frontend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/unbundle/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

var _ ports.GraphLoader = (*Loader)(nil)

// assetHashLen is the number of hash characters embedded in asset URLs.
const assetHashLen = 8

// Loader builds the module graph reachable from the configured entries.
type Loader struct {
	resolvers ports.ResolverFactory
	hasher    ports.Hasher
	logger    ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(resolvers ports.ResolverFactory, hasher ports.Hasher, logger ports.Logger) *Loader {
	return &Loader{resolvers: resolvers, hasher: hasher, logger: logger}
}

// Load compiles the entries of cfg and returns the module graph.
// Entries are visited in name order and each module keeps the entry that reached it first.
func (l *Loader) Load(ctx context.Context, cfg *domain.Config) (*domain.ModuleGraph, error) {
	if len(cfg.Entries) == 0 {
		return nil, domain.ErrNoEntries
	}

	c := &compilation{
		cfg:      cfg,
		resolver: l.resolvers.NewResolver(cfg),
		hasher:   l.hasher,
		logger:   l.logger,
		graph:    domain.NewModuleGraph(cfg.ProjectRoot),
	}

	names := slices.Sorted(func(yield func(string) bool) {
		for name := range cfg.Entries {
			if !yield(name) {
				return
			}
		}
	})

	for _, name := range names {
		entryPath := cfg.Entries[name]
		resolved, err := c.resolver.Resolve(entryPath, cfg.ProjectRoot)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidEntry.Error()), "entry", name)
		}

		entry, err := c.addModule(resolved, entryPath, name)
		if err != nil {
			return nil, err
		}
		if err := c.graph.AddEntry(name, entry.ID); err != nil {
			return nil, err
		}
		if err := c.walk(ctx, entry, name); err != nil {
			return nil, err
		}
	}

	return c.graph, nil
}

// compilation holds the state of one Load call.
type compilation struct {
	cfg      *domain.Config
	resolver ports.PathResolver
	hasher   ports.Hasher
	logger   ports.Logger
	graph    *domain.ModuleGraph
}

// walk visits every module reachable from start breadth first.
func (c *compilation) walk(ctx context.Context, start *domain.ModuleRecord, unit string) error {
	queue := []*domain.ModuleRecord{start}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		m := queue[0]
		queue = queue[1:]

		if m.Kind != domain.KindScript || m.External {
			continue
		}

		for _, call := range scanLoaderCalls(m.Source) {
			if call.Bundler {
				m.Edits = append(m.Edits, domain.Replacement{Range: call.Ident, Content: domain.BundlerLoaderIdent})
			}

			target, added, err := c.target(m, call.Request, unit)
			if err != nil {
				return err
			}
			if err := c.graph.AddEdge(domain.ReferenceEdge{
				Owner:     m.ID,
				Range:     call.Literal,
				CallRange: call.Call,
				Target:    target.ID,
				Request:   call.Request,
			}); err != nil {
				return err
			}
			if added {
				queue = append(queue, target)
			}
		}
	}
	return nil
}

// target returns the module request refers to from owner, adding it to the graph when new.
func (c *compilation) target(owner *domain.ModuleRecord, request, unit string) (*domain.ModuleRecord, bool, error) {
	bare := pipeline.StripLoaderPrefix(request)

	if isBuiltin(bare) {
		return c.external(bare, request, unit)
	}

	expanded, _ := c.cfg.ExpandAlias(bare)
	resolved, err := c.resolver.Resolve(expanded, filepath.Dir(owner.Path))
	if err != nil {
		if pipeline.IsRelativeRequest(expanded) || filepath.IsAbs(expanded) {
			wrapped := zerr.With(zerr.Wrap(err, "cannot compile reference"), "owner", owner.Path)
			return nil, false, zerr.With(wrapped, "request", request)
		}
		c.logger.Warn(fmt.Sprintf("module %s not found from %s, treating it as external", request, owner.Path))
		return c.external(bare, request, unit)
	}

	if existing, ok := c.graph.Module(domain.NewModuleID(resolved)); ok {
		return existing, false, nil
	}
	m, err := c.addModule(resolved, request, unit)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func (c *compilation) external(name, request, unit string) (*domain.ModuleRecord, bool, error) {
	id := domain.NewModuleID(name)
	if existing, ok := c.graph.Module(id); ok {
		return existing, false, nil
	}
	m := &domain.ModuleRecord{
		ID:         id,
		Path:       name,
		Request:    request,
		OriginUnit: unit,
		External:   true,
		Kind:       domain.KindExternal,
	}
	if err := c.graph.AddModule(m); err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func (c *compilation) addModule(path, request, unit string) (*domain.ModuleRecord, error) {
	//nolint:gosec // module paths come from module resolution
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}

	m := &domain.ModuleRecord{
		ID:         domain.NewModuleID(path),
		Path:       path,
		Request:    request,
		OriginUnit: unit,
		Kind:       domain.KindOf(path),
		Source:     source,
	}
	if m.Kind == domain.KindStaticAsset {
		m.Assets = []domain.Asset{{URL: c.assetURL(path, source)}}
	}

	if err := c.graph.AddModule(m); err != nil {
		return nil, err
	}
	return m, nil
}

// assetURL names an asset after its project-relative path with a content hash
// before the extension, e.g. "static/img/logo.3f2a9c01.png".
func (c *compilation) assetURL(path string, source []byte) string {
	rel := pipeline.RelativeTo(c.cfg.ProjectRoot, path)
	ext := filepath.Ext(rel)
	hash := c.hasher.HashBytes(source)
	if len(hash) > assetHashLen {
		hash = hash[:assetHashLen]
	}
	return pipeline.SanitizeRelative(strings.TrimSuffix(rel, ext) + "." + hash + ext)
}

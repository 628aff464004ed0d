package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports/mocks"
	"go.trai.ch/unbundle/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type pipelineMocks struct {
	resolver  *mocks.MockPathResolver
	manifests *mocks.MockManifestReader
	copier    *mocks.MockTreeCopier
	writer    *mocks.MockOutputWriter
	logger    *mocks.MockLogger
}

// setupPipeline creates a pipeline with fresh mocks.
func setupPipeline(t *testing.T, cfg *domain.Config) (*pipeline.Pipeline, pipelineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := pipelineMocks{
		resolver:  mocks.NewMockPathResolver(ctrl),
		manifests: mocks.NewMockManifestReader(ctrl),
		copier:    mocks.NewMockTreeCopier(ctrl),
		writer:    mocks.NewMockOutputWriter(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	p := pipeline.New(cfg, m.resolver, m.manifests, m.copier, m.writer, m.logger)
	return p, m
}

// module creates a module record whose kind follows its path.
func module(path, src string) *domain.ModuleRecord {
	clean := path
	if i := strings.LastIndexByte(path, '!'); i >= 0 {
		clean = path[i+1:]
	}
	return &domain.ModuleRecord{
		ID:     domain.NewModuleID(path),
		Path:   path,
		Kind:   domain.KindOf(clean),
		Source: []byte(src),
	}
}

// edgeTo creates an edge for the first quoted occurrence of request in the owner's source.
func edgeTo(t *testing.T, owner, target *domain.ModuleRecord, request string) domain.ReferenceEdge {
	t.Helper()
	quoted := "'" + request + "'"
	start := strings.Index(string(owner.Source), quoted)
	require.GreaterOrEqual(t, start, 0, "request %s not in source", request)

	call := domain.Range{Start: start, End: start + len(quoted)}
	if i := strings.LastIndex(string(owner.Source[:start]), "require("); i >= 0 {
		call = domain.Range{Start: i, End: start + len(quoted) + 1}
	}

	e := domain.ReferenceEdge{
		Owner:     owner.ID,
		Range:     domain.Range{Start: start, End: start + len(quoted)},
		CallRange: call,
		Request:   request,
	}
	if target != nil {
		e.Target = target.ID
	}
	return e
}

// newGraph builds a graph with the first module as its only entry.
func newGraph(t *testing.T, root string, modules ...*domain.ModuleRecord) *domain.ModuleGraph {
	t.Helper()
	g := domain.NewModuleGraph(root)
	for _, m := range modules {
		require.NoError(t, g.AddModule(m))
	}
	if len(modules) > 0 {
		require.NoError(t, g.AddEntry("main", modules[0].ID))
	}
	return g
}

func TestPartition_OneUnitPerModule(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{ProjectRoot: "/p/src"})

	index := module("/p/src/index.js", "require('./a');require('./lib/b');")
	a := module("/p/src/a.js", "module.exports = 1;")
	b := module("/p/src/lib/b.ts", "module.exports = 2;")
	g := newGraph(t, "/p", index, a, b)
	require.NoError(t, g.AddEdge(edgeTo(t, index, a, "./a")))
	require.NoError(t, g.AddEdge(edgeTo(t, index, b, "./lib/b")))

	units, err := p.Partition(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.js", "index.js", "lib/b.js"}, units.Paths())
	for u := range units.All() {
		assert.True(t, u.Entry, "unit %s should be an entry", u.Path)
		assert.Len(t, u.Modules, 1)
	}

	u, ok := g.UnitOf(b.ID)
	require.True(t, ok)
	assert.Equal(t, "lib/b.js", u.Path)
}

func TestPartition_MergesCollidingPaths(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{ProjectRoot: "/p/src"})

	index := module("/p/src/index.js", "require('./data');require('babel!./data');")
	plain := module("/p/src/data.js", "exports.a = 1;")
	loaded := module("babel!/p/src/data.js", "exports.b = 2;")
	g := newGraph(t, "/p", index, plain, loaded)
	require.NoError(t, g.AddEdge(edgeTo(t, index, plain, "./data")))
	require.NoError(t, g.AddEdge(edgeTo(t, index, loaded, "babel!./data")))

	units, err := p.Partition(context.Background(), g)
	require.NoError(t, err)

	require.Equal(t, 2, units.Len())
	u, ok := units.Get("data.js")
	require.True(t, ok)
	assert.Equal(t, []domain.ModuleID{plain.ID, loaded.ID}, u.Modules)
}

func TestPartition_SkipsExternals(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{ProjectRoot: "/p"})

	index := module("/p/index.js", "require('fs');")
	fs := &domain.ModuleRecord{ID: domain.NewModuleID("fs"), Path: "fs", Kind: domain.KindExternal, External: true}
	g := newGraph(t, "/p", index, fs)
	require.NoError(t, g.AddEdge(edgeTo(t, index, fs, "fs")))

	units, err := p.Partition(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, []string{"index.js"}, units.Paths())
	_, ok := g.UnitOf(fs.ID)
	assert.False(t, ok)
}

func TestPartition_SanitizesParentEscapes(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{ProjectRoot: "/p/src"})

	index := module("/p/src/index.js", "require('../shared/util');")
	util := module("/p/shared/util.js", "")
	g := newGraph(t, "/p", index, util)
	require.NoError(t, g.AddEdge(edgeTo(t, index, util, "../shared/util")))

	units, err := p.Partition(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, []string{"index.js", "shared/util.js"}, units.Paths())
}

func TestPartition_Idempotent(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{ProjectRoot: "/p"})

	index := module("/p/index.js", "require('./a');")
	a := module("/p/a", "")
	g := newGraph(t, "/p", index, a)
	require.NoError(t, g.AddEdge(edgeTo(t, index, a, "./a")))

	first, err := p.Partition(context.Background(), g)
	require.NoError(t, err)
	second, err := p.Partition(context.Background(), g)
	require.NoError(t, err)

	assert.Equal(t, first.Paths(), second.Paths())
	assert.Equal(t, []string{"a.js", "index.js"}, second.Paths())
}

func TestPartition_NoEntries(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{ProjectRoot: "/p"})

	g := domain.NewModuleGraph("/p")
	require.NoError(t, g.AddModule(module("/p/index.js", "")))

	_, err := p.Partition(context.Background(), g)
	require.ErrorIs(t, err, domain.ErrNoEntries)
}

func TestPartition_Canceled(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{ProjectRoot: "/p"})
	g := newGraph(t, "/p", module("/p/index.js", ""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Partition(ctx, g)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPartition_UsesGraphRootWithoutProjectRoot(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{})

	index := module("/work/app/main.js", "")
	g := newGraph(t, "/work/app", index)

	units, err := p.Partition(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.js"}, units.Paths())
}

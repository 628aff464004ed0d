package pipeline_test

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/engine/pipeline"
)

func TestRender_ScriptUnit(t *testing.T) {
	p, m := setupPipeline(t, &domain.Config{ProjectRoot: "/p/src", PublicPath: "/static/"})

	src := "var __WEBPACK_AMD_DEFINE_RESULT__;\n" +
		"var format = __webpack_require__(1);\n" +
		"var logo = require('logo');\n" +
		"module.exports = function user(name) { return format(name); };"
	user := module("/p/src/api/user.js", src)
	format := module("/p/src/api/helpers/format.js", "module.exports = function (s) { return s.trim(); };\n")
	logo := &domain.ModuleRecord{
		ID:     domain.NewModuleID("/p/src/logo.png"),
		Path:   "/p/src/logo.png",
		Kind:   domain.KindStaticAsset,
		Assets: []domain.Asset{{URL: "img/logo.3f2a.png"}},
	}

	amd := "var __WEBPACK_AMD_DEFINE_RESULT__;\n"
	call := "__webpack_require__(1)"
	callStart := len(amd) + len("var format = ")
	ident := domain.Range{Start: callStart, End: callStart + len(domain.BundlerLoaderIdent)}
	user.Edits = []domain.Replacement{
		{Range: domain.Range{Start: 0, End: len(amd)}, Content: amd, Origin: domain.OriginAMDDefine},
		{Range: ident, Content: domain.BundlerLoaderIdent},
	}

	g := partitioned(t, p, m, "/p", []*domain.ModuleRecord{user, format, logo}, func(g *domain.ModuleGraph) {
		require.NoError(t, g.AddEdge(domain.ReferenceEdge{
			Owner:     user.ID,
			Target:    format.ID,
			Request:   "./helpers/format",
			Range:     domain.Range{Start: ident.End + 1, End: callStart + len(call) - 1},
			CallRange: domain.Range{Start: callStart, End: callStart + len(call)},
		}))
		require.NoError(t, g.AddEdge(edgeTo(t, user, logo, "logo")))
	})

	out, err := p.Render(context.Background(), unitOf(t, g, user))
	require.NoError(t, err)

	gld := goldie.New(t)
	gld.Assert(t, "render_script_unit", out)

	assert.NotContains(t, string(out), domain.BundlerLoaderIdent)
	assert.NotContains(t, string(out), domain.BundlerAMDMarker)
}

func TestRender_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *domain.Config
		module *domain.ModuleRecord
		want   string
	}{
		{
			name:   "json data is raw",
			cfg:    &domain.Config{ProjectRoot: "/p"},
			module: module("/p/data.json", `{"name":"app"}`),
			want:   `{"name":"app"}`,
		},
		{
			name:   "style is raw",
			cfg:    &domain.Config{ProjectRoot: "/p"},
			module: module("/p/app.css", "body { margin: 0; }\n"),
			want:   "body { margin: 0; }\n",
		},
		{
			name: "asset with cdn",
			cfg:  &domain.Config{ProjectRoot: "/p", CDNName: "CDN"},
			module: &domain.ModuleRecord{
				ID:     domain.NewModuleID("/p/a.png"),
				Path:   "/p/a.png",
				Kind:   domain.KindStaticAsset,
				Assets: []domain.Asset{{URL: "a.1234.png"}},
			},
			want: "module.exports = CDN + 'a.1234.png';\n",
		},
		{
			name: "asset with public path",
			cfg:  &domain.Config{ProjectRoot: "/p", PublicPath: "https://cdn.example.com/"},
			module: &domain.ModuleRecord{
				ID:     domain.NewModuleID("/p/a.png"),
				Path:   "/p/a.png",
				Kind:   domain.KindStaticAsset,
				Assets: []domain.Asset{{URL: "a.1234.png"}},
			},
			want: "module.exports = 'https://cdn.example.com/a.1234.png';\n",
		},
		{
			name: "asset without outputs falls back to source",
			cfg:  &domain.Config{ProjectRoot: "/p"},
			module: &domain.ModuleRecord{
				ID:     domain.NewModuleID("/p/a.txt"),
				Path:   "/p/a.txt",
				Kind:   domain.KindStaticAsset,
				Source: []byte("plain text"),
			},
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := setupPipeline(t, tt.cfg)
			g := partitioned(t, p, m, "/p", []*domain.ModuleRecord{tt.module}, nil)

			out, err := p.Render(context.Background(), unitOf(t, g, tt.module))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestRender_MergedUnitConcatenates(t *testing.T) {
	p, m := setupPipeline(t, &domain.Config{ProjectRoot: "/p"})

	index := module("/p/index.js", "require('./data');require('babel!./data');")
	first := module("/p/data.js", "exports.a = 1;")
	second := module("babel!/p/data.js", "exports.b = 2;\n")
	g := partitioned(t, p, m, "/p", []*domain.ModuleRecord{index, first, second}, func(g *domain.ModuleGraph) {
		require.NoError(t, g.AddEdge(edgeTo(t, index, first, "./data")))
		require.NoError(t, g.AddEdge(edgeTo(t, index, second, "babel!./data")))
	})

	out, err := p.Render(context.Background(), unitOf(t, g, first))
	require.NoError(t, err)
	assert.Equal(t, "exports.a = 1;\nexports.b = 2;\n", string(out))
}

func TestRender_BeforePartition(t *testing.T) {
	p, _ := setupPipeline(t, &domain.Config{ProjectRoot: "/p"})

	_, err := p.Render(context.Background(), &domain.OutputUnit{Path: "index.js"})
	require.ErrorIs(t, err, domain.ErrPhaseOrder)

	_, err = p.RenderAll(context.Background())
	require.ErrorIs(t, err, domain.ErrPhaseOrder)
}

func TestRenderAll(t *testing.T) {
	p, m := setupPipeline(t, &domain.Config{ProjectRoot: "/p"})

	index := module("/p/index.js", "require('./a');")
	a := module("/p/a.js", "module.exports = 1;")
	g := partitioned(t, p, m, "/p", []*domain.ModuleRecord{index, a}, func(g *domain.ModuleGraph) {
		require.NoError(t, g.AddEdge(edgeTo(t, index, a, "./a")))
	})
	require.Equal(t, 2, g.Units().Len())

	tree, err := p.RenderAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, tree.Len())

	got, ok := tree.Get("index.js")
	require.True(t, ok)
	assert.Equal(t, "require('./a.js');", string(got))
}

func TestRender_UnresolvableReferenceFailsUnit(t *testing.T) {
	p, m := setupPipeline(t, &domain.Config{ProjectRoot: "/p"})

	index := module("/p/index.js", "require('pkg/util.es6');")
	util := module("/p/node_modules/pkg/util.js", "")
	g := partitioned(t, p, m, "/p", []*domain.ModuleRecord{index, util}, func(g *domain.ModuleGraph) {
		require.NoError(t, g.AddEdge(edgeTo(t, index, util, "pkg/util.es6")))
	})
	m.resolver.EXPECT().Resolve("pkg/util.es6", "/p").Return("", assert.AnError)

	_, err := p.Render(context.Background(), unitOf(t, g, index))
	require.ErrorIs(t, err, domain.ErrUnresolvableReference)
}

func TestApplyEdits(t *testing.T) {
	src := []byte("abcdefghij")

	tests := []struct {
		name    string
		edits   []domain.Replacement
		want    string
		wantErr string
	}{
		{
			name: "no edits",
			want: "abcdefghij",
		},
		{
			name: "unordered edits",
			edits: []domain.Replacement{
				{Range: domain.Range{Start: 8, End: 10}, Content: "XY"},
				{Range: domain.Range{Start: 0, End: 1}, Content: "_"},
			},
			want: "_bcdefghXY",
		},
		{
			name: "contained edit is superseded",
			edits: []domain.Replacement{
				{Range: domain.Range{Start: 3, End: 5}, Content: "inner"},
				{Range: domain.Range{Start: 2, End: 6}, Content: "outer"},
			},
			want: "abouterghij",
		},
		{
			name: "insertion",
			edits: []domain.Replacement{
				{Range: domain.Range{Start: 5, End: 5}, Content: "+"},
			},
			want: "abcde+fghij",
		},
		{
			name: "empty replacement deletes",
			edits: []domain.Replacement{
				{Range: domain.Range{Start: 0, End: 3}},
			},
			want: "defghij",
		},
		{
			name: "partial overlap",
			edits: []domain.Replacement{
				{Range: domain.Range{Start: 1, End: 4}, Content: "x"},
				{Range: domain.Range{Start: 3, End: 6}, Content: "y"},
			},
			wantErr: domain.ErrOverlappingEdits.Error(),
		},
		{
			name: "out of range",
			edits: []domain.Replacement{
				{Range: domain.Range{Start: 8, End: 12}, Content: "x"},
			},
			wantErr: domain.ErrEditOutOfRange.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pipeline.ApplyEdits(src, tt.edits)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

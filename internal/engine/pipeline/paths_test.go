package pipeline_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/unbundle/internal/engine/pipeline"
)

func TestStripLoaderPrefix(t *testing.T) {
	assert.Equal(t, "./a.js", pipeline.StripLoaderPrefix("./a.js"))
	assert.Equal(t, "./a.png", pipeline.StripLoaderPrefix("image!./a.png"))
	assert.Equal(t, "/p/a.js", pipeline.StripLoaderPrefix("style!css!/p/a.js"))
	assert.True(t, pipeline.HasLoaderPrefix("babel!./a"))
	assert.False(t, pipeline.HasLoaderPrefix("./a"))
}

func TestSanitizeRelative(t *testing.T) {
	tests := map[string]string{
		"a/b.js":          "a/b.js",
		"../a/b.js":       "a/b.js",
		"../../../a.js":   "a.js",
		"./a/../b.js":     "b.js",
		"/abs/a.js":       "abs/a.js",
		"..":              ".",
		"":                ".",
		"a/./b/../../c":   "c",
		"x/../../etc/foo": "etc/foo",
	}
	for in, want := range tests {
		assert.Equal(t, want, pipeline.SanitizeRelative(in), "input %q", in)
	}
}

func TestSanitizeRelative_KeepsBackslashInNames(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("backslash is a separator on this platform")
	}
	assert.Equal(t, `lib/a\b.js`, pipeline.SanitizeRelative(`lib/a\b.js`))
	assert.Equal(t, `a\b`, pipeline.ToSlash(`a\b`))
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		root string
		dir  string
		want bool
	}{
		{root: "/p/dist", dir: "/p/dist", want: true},
		{root: "/p/dist", dir: "/p/dist/src/a.js", want: true},
		{root: "/p/dist", dir: "/p/distro/a.js", want: false},
		{root: "/p/dist", dir: "/p", want: false},
		{root: "/p/dist", dir: "/p/..dist", want: false},
		{root: "/p", dir: "/p/..a/b", want: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pipeline.IsWithin(tt.root, tt.dir), "%s in %s", tt.dir, tt.root)
	}
}

func TestVendorRelative(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "/p/node_modules/lodash/get.js", want: "lodash/get.js", ok: true},
		{in: "/p/node_modules/a/node_modules/b/index.js", want: "b/index.js", ok: true},
		{in: "node_modules/@scope/pkg/lib.js", want: "@scope/pkg/lib.js", ok: true},
		{in: "/p/src/index.js", ok: false},
		{in: "/p/node_modules/", ok: false},
	}
	for _, tt := range tests {
		got, ok := pipeline.VendorRelative(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPackageRoot(t *testing.T) {
	dir, name, ok := pipeline.PackageRoot("/p/node_modules/@babel/runtime/helpers/a.js")
	assert.True(t, ok)
	assert.Equal(t, "/p/node_modules/@babel/runtime", dir)
	assert.Equal(t, "@babel/runtime", name)

	dir, name, ok = pipeline.PackageRoot("/p/node_modules/express/node_modules/debug/src/index.js")
	assert.True(t, ok)
	assert.Equal(t, "/p/node_modules/express/node_modules/debug", dir)
	assert.Equal(t, "debug", name)

	_, _, ok = pipeline.PackageRoot("/p/src/a.js")
	assert.False(t, ok)
}

func TestRequestClassification(t *testing.T) {
	assert.Equal(t, "lodash", pipeline.PackageName("lodash/fp/map"))
	assert.Equal(t, "@scope/pkg", pipeline.PackageName("@scope/pkg/lib/a.js"))
	assert.Equal(t, "fp/map", pipeline.SubPath("lodash/fp/map"))
	assert.Equal(t, "", pipeline.SubPath("@scope/pkg"))

	assert.True(t, pipeline.IsRelativeRequest("./a"))
	assert.True(t, pipeline.IsRelativeRequest("../a"))
	assert.True(t, pipeline.IsRelativeRequest(".."))
	assert.False(t, pipeline.IsRelativeRequest(".hidden"))

	assert.True(t, pipeline.IsBareRequest("lodash"))
	assert.False(t, pipeline.IsBareRequest("/abs"))
	assert.False(t, pipeline.IsBareRequest("./rel"))
	assert.False(t, pipeline.IsBareRequest(""))
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, `'./a.js'`, pipeline.QuoteLiteral("./a.js"))
	assert.Equal(t, `'it\'s'`, pipeline.QuoteLiteral("it's"))
	assert.Equal(t, `'a\\b'`, pipeline.QuoteLiteral(`a\b`))
	assert.Equal(t, `'a\nb'`, pipeline.QuoteLiteral("a\nb"))
}

func TestUnitLiteral(t *testing.T) {
	assert.Equal(t, "./helpers/format.js", pipeline.UnitLiteral("api/user.js", "api/helpers/format.js"))
	assert.Equal(t, "../lib/a.js", pipeline.UnitLiteral("views/home.js", "lib/a.js"))
	assert.Equal(t, "./a.js", pipeline.UnitLiteral("index.js", "a.js"))
}

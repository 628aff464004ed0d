package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unbundle/internal/adapters/fs"
	"go.trai.ch/unbundle/internal/core/domain"
)

func TestManifestReader_Read(t *testing.T) {
	root := t.TempDir()
	raw := `{
  "name": "express",
  "main": "index.js",
  "dependencies": {"debug": "2.6.9", "body-parser": "1.20.1", "accepts": "~1.3.8"},
  "devDependencies": {"mocha": "10.0.0"}
}`
	writeTree(t, root, map[string]string{"package.json": raw})

	reader, err := fs.NewManifestReader(8)
	require.NoError(t, err)

	path := filepath.Join(root, "package.json")
	manifest, err := reader.Read(path)
	require.NoError(t, err)
	require.NotNil(t, manifest)

	assert.Equal(t, path, manifest.Path)
	assert.Equal(t, "express", manifest.Name)
	assert.Equal(t, []string{"accepts", "body-parser", "debug"}, manifest.Dependencies)
	assert.Equal(t, []byte(raw), manifest.Raw)
}

func TestManifestReader_Missing(t *testing.T) {
	reader, err := fs.NewManifestReader(8)
	require.NoError(t, err)

	manifest, err := reader.Read(filepath.Join(t.TempDir(), "package.json"))
	require.NoError(t, err)
	assert.Nil(t, manifest)
}

func TestManifestReader_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"name": `},
		{name: "not an object", content: `["a", "b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, map[string]string{"package.json": tt.content})

			reader, err := fs.NewManifestReader(8)
			require.NoError(t, err)

			_, err = reader.Read(filepath.Join(root, "package.json"))
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrManifestParseFailed.Error())
		})
	}
}

func TestManifestReader_CacheInvalidatedOnChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "package.json")
	writeTree(t, root, map[string]string{"package.json": `{"name":"a"}`})

	reader, err := fs.NewManifestReader(8)
	require.NoError(t, err)

	first, err := reader.Read(path)
	require.NoError(t, err)
	again, err := reader.Read(path)
	require.NoError(t, err)
	assert.Same(t, first, again, "unchanged manifests come from the cache")

	require.NoError(t, os.WriteFile(path, []byte(`{"name":"renamed"}`), 0o600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err := reader.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "renamed", changed.Name)

	require.NoError(t, os.Remove(path))
	gone, err := reader.Read(path)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestNewManifestReader_InvalidSize(t *testing.T) {
	_, err := fs.NewManifestReader(0)
	require.Error(t, err)
}

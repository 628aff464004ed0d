package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unbundle/internal/adapters/cas"
	"go.trai.ch/unbundle/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)

	record := domain.EmitRecord{
		Path:      "src/api/user.js",
		Hash:      "9f86d081884c7d65",
		Size:      42,
		Timestamp: time.Now().Truncate(time.Second),
	}

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, store.Put(root, record))

		got, err := store.Get(root, "src/api/user.js")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, record.Timestamp.Equal(got.Timestamp))
		got.Timestamp = record.Timestamp
		assert.Equal(t, record, *got)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		got, err := store.Get(root, "missing.js")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_RecordsAreScopedByRoot(t *testing.T) {
	t.Parallel()

	store, err := cas.NewStore()
	require.NoError(t, err)

	first, second := t.TempDir(), t.TempDir()
	require.NoError(t, store.Put(first, domain.EmitRecord{Path: "index.js", Hash: "a"}))

	got, err := store.Get(second, "index.js")
	require.NoError(t, err)
	assert.Nil(t, got)

	entries, err := os.ReadDir(filepath.Join(first, domain.DefaultStorePath()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_GetCorrupt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := cas.NewStore()
	require.NoError(t, err)
	require.NoError(t, store.Put(root, domain.EmitRecord{Path: "index.js"}))

	storeDir := filepath.Join(root, domain.DefaultStorePath())
	entries, err := os.ReadDir(storeDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	//nolint:gosec // test file
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, entries[0].Name()), []byte("{ invalid json"), 0o600))

	_, err = store.Get(root, "index.js")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
}

func TestStore_PutCreateFailure(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	// A file where the state directory should go.
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.StateDirName), nil, 0o600))

	store, err := cas.NewStore()
	require.NoError(t, err)

	err = store.Put(root, domain.EmitRecord{Path: "index.js"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStoreCreateFailed.Error())
}

package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unbundle/internal/adapters/fs"
)

func TestVerifier_VerifyOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.js": "abc", "lib/a.js": ""})

	v := fs.NewVerifier()

	tests := []struct {
		name string
		path string
		size int
		want bool
	}{
		{name: "matching size", path: "index.js", size: 3, want: true},
		{name: "size mismatch", path: "index.js", size: 4, want: false},
		{name: "missing file", path: "missing.js", size: 0, want: false},
		{name: "directory", path: "lib", size: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.VerifyOutput(filepath.Join(root, tt.path), tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

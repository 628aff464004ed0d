package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TreeCopier = (*Copier)(nil)

// Copier copies directory trees, merging into existing directories and keeping symlinks as links.
type Copier struct{}

// NewCopier creates a new Copier.
func NewCopier() *Copier {
	return &Copier{}
}

// CopyTree copies src to dst. skip receives forward-slash paths relative to src.
// Cancellation is checked before every entry.
func (c *Copier) CopyTree(ctx context.Context, src, dst string, skip ports.SkipFunc) error {
	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination"), "path", dst)
	}

	opts := copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		OnDirExists: func(string, string) copy.DirExistsAction {
			return copy.Merge
		},
		Skip: func(info os.FileInfo, path, _ string) (bool, error) {
			if err := ctx.Err(); err != nil {
				return true, err
			}
			if skip == nil {
				return false, nil
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return false, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
			}
			return skip(filepath.ToSlash(rel), info), nil
		},
	}

	if err := copy.Copy(src, dst, opts); err != nil {
		return zerr.With(zerr.With(err, "src", src), "dst", dst)
	}
	return nil
}

// Package fs provides file system adapters for module resolution, manifests, hashing and output.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides directory walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkDirs yields root and every directory below it, in lexical order.
// skip receives the forward-slash path relative to root. Skipped directories
// are not descended into. Unreadable directories are ignored.
func (w *Walker) WalkDirs(root string, skip func(rel string) bool) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}

			if path != root && skip != nil {
				rel, relErr := filepath.Rel(root, path)
				if relErr == nil && skip(filepath.ToSlash(rel)) {
					return filepath.SkipDir
				}
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

package ports

import (
	"context"
	"io/fs"
)

// SkipFunc decides whether an entry is left out of a tree copy.
// rel is the forward-slash path of the entry relative to the copy source.
type SkipFunc func(rel string, info fs.FileInfo) bool

// TreeCopier copies directory trees into the output.
//
//go:generate go run go.uber.org/mock/mockgen -source=copier.go -destination=mocks/mock_copier.go -package=mocks
type TreeCopier interface {
	// CopyTree copies src to dst, merging into existing directories and keeping symlinks as links.
	// A nil skip copies everything.
	CopyTree(ctx context.Context, src, dst string, skip SkipFunc) error
}

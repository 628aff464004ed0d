package domain

import (
	"iter"
	"maps"
	"slices"
)

// OutputTree holds rendered unit text keyed by output-relative path.
type OutputTree struct {
	files map[string][]byte
}

// NewOutputTree creates an empty tree.
func NewOutputTree() *OutputTree {
	return &OutputTree{files: make(map[string][]byte)}
}

// Put stores the content for path, replacing any previous content.
func (t *OutputTree) Put(path string, content []byte) {
	t.files[path] = content
}

// Get returns the content stored for path.
func (t *OutputTree) Get(path string) ([]byte, bool) {
	c, ok := t.files[path]
	return c, ok
}

// Files iterates over the stored files in sorted path order.
func (t *OutputTree) Files() iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		for _, p := range slices.Sorted(maps.Keys(t.files)) {
			if !yield(p, t.files[p]) {
				return
			}
		}
	}
}

// Len returns the number of files in the tree.
func (t *OutputTree) Len() int {
	return len(t.files)
}

package domain

import (
	"iter"
	"slices"
)

// DependencyClosure maps vendor package names to their absolute directories.
// Names keep the order in which they were resolved and the first directory wins.
type DependencyClosure struct {
	dirs  map[string]string
	names []string
}

// NewDependencyClosure creates an empty closure.
func NewDependencyClosure() *DependencyClosure {
	return &DependencyClosure{dirs: make(map[string]string)}
}

// Add records dir for name. It reports false if name was already present.
func (c *DependencyClosure) Add(name, dir string) bool {
	if _, ok := c.dirs[name]; ok {
		return false
	}
	c.dirs[name] = dir
	c.names = append(c.names, name)
	return true
}

// Dir returns the directory resolved for name.
func (c *DependencyClosure) Dir(name string) (string, bool) {
	dir, ok := c.dirs[name]
	return dir, ok
}

// Has reports whether name is part of the closure.
func (c *DependencyClosure) Has(name string) bool {
	_, ok := c.dirs[name]
	return ok
}

// Names returns the package names in resolution order.
func (c *DependencyClosure) Names() []string {
	return slices.Clone(c.names)
}

// All iterates over name and directory pairs in resolution order.
func (c *DependencyClosure) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, n := range c.names {
			if !yield(n, c.dirs[n]) {
				return
			}
		}
	}
}

// Len returns the number of resolved packages.
func (c *DependencyClosure) Len() int {
	return len(c.names)
}

package pipeline

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchesAny reports whether entry matches one of the exclusion globs.
// A directory also matches a "dir/**" pattern naming the directory itself so its
// subtree is pruned as a whole.
func matchesAny(patterns []string, entry string, isDir bool) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, entry); ok {
			return true
		}
		if isDir && strings.HasSuffix(pattern, "/**") {
			if ok, _ := doublestar.Match(strings.TrimSuffix(pattern, "/**"), entry); ok {
				return true
			}
		}
	}
	return false
}

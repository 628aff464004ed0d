package pipeline

import (
	"strings"

	"go.trai.ch/unbundle/internal/core/domain"
)

// Normalize strips bundler runtime artifacts from compiler replacement edits.
// Variable-injection and AMD define edits are emptied, and the bundler's loader
// identifier is replaced by the native one. The input slice is not modified.
func Normalize(edits []domain.Replacement) []domain.Replacement {
	out := make([]domain.Replacement, len(edits))
	for i, e := range edits {
		switch {
		case e.Origin == domain.OriginVarInjection:
			e.Content = ""
		case e.Origin == domain.OriginAMDDefine, strings.Contains(e.Content, domain.BundlerAMDMarker):
			e.Content = ""
		case strings.Contains(e.Content, domain.BundlerLoaderIdent):
			e.Content = strings.ReplaceAll(e.Content, domain.BundlerLoaderIdent, domain.NativeLoaderIdent)
		}
		out[i] = e
	}
	return out
}

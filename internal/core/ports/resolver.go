package ports

import "go.trai.ch/unbundle/internal/core/domain"

// PathResolver resolves module requests the way the target runtime does.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PathResolver interface {
	// Resolve returns the absolute path of the file request refers to when loaded from fromDir.
	Resolve(request, fromDir string) (string, error)

	// LocatePackage walks up from fromDir looking for a vendored package called name.
	// It reports false when no ancestor directory contains the package.
	LocatePackage(name, fromDir string) (string, bool)
}

// ResolverFactory creates path resolvers bound to a configuration's
// extension list and manifest field priority.
type ResolverFactory interface {
	NewResolver(cfg *domain.Config) PathResolver
}

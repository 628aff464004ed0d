package ports

import "go.trai.ch/unbundle/internal/core/domain"

// ManifestReader reads package manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// Read parses the manifest at path.
	// Returns nil, nil if the file does not exist.
	Read(path string) (*domain.Manifest, error)
}

package ports

import "go.trai.ch/unbundle/internal/core/domain"

// EmitStore defines the interface for storing and retrieving emit records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type EmitStore interface {
	// Get retrieves the emit record for an output path.
	// Returns nil, nil if not found.
	Get(root, path string) (*domain.EmitRecord, error)

	// Put stores the emit record.
	Put(root string, record domain.EmitRecord) error
}

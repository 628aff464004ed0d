package ports

import (
	"context"

	"go.trai.ch/unbundle/internal/core/domain"
)

// GraphLoader is the boundary to the front-end compiler.
// It produces the compiled module graph for the configured entries.
//
//go:generate go run go.uber.org/mock/mockgen -source=graph_loader.go -destination=mocks/mock_graph_loader.go -package=mocks
type GraphLoader interface {
	// Load compiles the entries of cfg and returns the module graph.
	Load(ctx context.Context, cfg *domain.Config) (*domain.ModuleGraph, error)
}

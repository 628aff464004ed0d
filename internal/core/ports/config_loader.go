package ports

import "go.trai.ch/unbundle/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration file by walking up from cwd and returns the resolved config.
	// If path is not empty it is used instead of discovery.
	Load(cwd, path string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to find the directory containing the configuration file.
	DiscoverRoot(cwd string) (string, error)
}

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/unbundle/internal/adapters/cas"
	_ "go.trai.ch/unbundle/internal/adapters/config"
	_ "go.trai.ch/unbundle/internal/adapters/frontend"
	_ "go.trai.ch/unbundle/internal/adapters/fs"
	_ "go.trai.ch/unbundle/internal/adapters/linear"
	_ "go.trai.ch/unbundle/internal/adapters/logger"
	_ "go.trai.ch/unbundle/internal/adapters/telemetry"
	_ "go.trai.ch/unbundle/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/unbundle/internal/app"
)

package ports

import (
	"context"
	"time"
)

// Renderer presents build phase progress.
// It decouples telemetry collection from presentation.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer.
	Start(ctx context.Context) error

	// Stop flushes pending output.
	Stop() error

	// OnPhaseStart is called when a traced phase begins.
	// parentID is empty for root phases.
	OnPhaseStart(spanID, parentID, name string, startTime time.Time)

	// OnPhaseComplete is called when a traced phase finishes.
	// err is nil on success.
	OnPhaseComplete(spanID string, endTime time.Time, err error)
}

// Package pipeline re-partitions a compiled module graph into one output unit per module,
// rewrites cross-module references for the runtime's own loader and emits the result.
package pipeline

import (
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
)

type phase uint8

const (
	phaseIdle phase = iota
	phasePartitioned
	phaseEmitted
)

// Pipeline runs one build pass: Partition, then Render per unit, then Emit.
// A Pipeline holds per-pass state and must not be shared between concurrent passes.
type Pipeline struct {
	cfg       *domain.Config
	resolver  ports.PathResolver
	manifests ports.ManifestReader
	copier    ports.TreeCopier
	writer    ports.OutputWriter
	logger    ports.Logger

	phase  phase
	graph  *domain.ModuleGraph
	staged map[string]*domain.VendorManifestEntry
}

// New creates a Pipeline for the given configuration.
func New(
	cfg *domain.Config,
	resolver ports.PathResolver,
	manifests ports.ManifestReader,
	copier ports.TreeCopier,
	writer ports.OutputWriter,
	logger ports.Logger,
) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		resolver:  resolver,
		manifests: manifests,
		copier:    copier,
		writer:    writer,
		logger:    logger,
	}
	p.Reset()
	return p
}

// Reset clears all per-pass state so the pipeline can run another pass.
func (p *Pipeline) Reset() {
	p.phase = phaseIdle
	p.graph = nil
	p.staged = make(map[string]*domain.VendorManifestEntry)
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() *domain.Config {
	return p.cfg
}

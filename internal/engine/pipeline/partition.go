package pipeline

import (
	"context"

	"go.trai.ch/unbundle/internal/core/domain"
)

// Partition assigns every retained module reachable from the graph's entries to its own
// output unit and swaps the new partition into the graph.
// Modules whose paths normalize to the same output path share one unit.
// Vendored modules stage their package manifest as a side effect.
func (p *Pipeline) Partition(ctx context.Context, g *domain.ModuleGraph) (*domain.UnitSet, error) {
	if g.EntryCount() == 0 {
		return nil, domain.ErrNoEntries
	}

	p.Reset()

	byPath := make(map[string]*domain.OutputUnit)
	var units []*domain.OutputUnit
	assigned := make(map[domain.ModuleID]bool)

	for _, entry := range g.Entries() {
		for m := range g.Reachable(entry) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if m.External || m.Kind == domain.KindExternal || assigned[m.ID] {
				continue
			}
			assigned[m.ID] = true

			unitPath := p.UnitPath(g, m)
			u, ok := byPath[unitPath]
			if !ok {
				u = &domain.OutputUnit{
					Path:  unitPath,
					Kind:  m.Kind,
					Entry: true,
				}
				byPath[unitPath] = u
				units = append(units, u)

				if IsVendorPath(unitPath) {
					p.stageManifest(m, unitPath)
				}
			}
			u.Modules = append(u.Modules, m.ID)
		}
	}

	set := domain.NewUnitSet(units)
	g.SwapUnits(set)
	p.graph = g
	p.phase = phasePartitioned

	return set, nil
}

// UnitPath returns the output-relative path a module is emitted under.
func (p *Pipeline) UnitPath(g *domain.ModuleGraph, m *domain.ModuleRecord) string {
	return domain.OutputName(RelativeTo(p.projectRoot(g), StripLoaderPrefix(m.Path)), m.Kind)
}

func (p *Pipeline) projectRoot(g *domain.ModuleGraph) string {
	if p.cfg.ProjectRoot != "" {
		return p.cfg.ProjectRoot
	}
	if g != nil {
		return g.Root()
	}
	return "."
}

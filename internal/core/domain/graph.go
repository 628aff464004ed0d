// Package domain contains the core domain models for module graphs and their output partition.
package domain

import (
	"iter"
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// ModuleGraph is the compiled module dependency graph handed over by the front-end.
type ModuleGraph struct {
	root    string
	modules map[ModuleID]*ModuleRecord
	order   []ModuleID
	entries map[string]ModuleID
	edges   map[ModuleID][]ReferenceEdge
	units   *UnitSet
}

// NewModuleGraph creates an empty graph rooted at the given project root.
func NewModuleGraph(root string) *ModuleGraph {
	return &ModuleGraph{
		root:    root,
		modules: make(map[ModuleID]*ModuleRecord),
		entries: make(map[string]ModuleID),
		edges:   make(map[ModuleID][]ReferenceEdge),
	}
}

// Root returns the project root the graph was compiled from.
func (g *ModuleGraph) Root() string {
	return g.root
}

// AddModule adds a module to the graph.
// It returns an error if a module with the same ID already exists.
func (g *ModuleGraph) AddModule(m *ModuleRecord) error {
	if _, exists := g.modules[m.ID]; exists {
		return zerr.With(ErrModuleAlreadyExists, "module", m.ID.String())
	}
	g.modules[m.ID] = m
	g.order = append(g.order, m.ID)
	return nil
}

// Module returns the module with the given ID.
func (g *ModuleGraph) Module(id ModuleID) (*ModuleRecord, bool) {
	m, ok := g.modules[id]
	return m, ok
}

// Modules iterates over all modules in insertion order.
func (g *ModuleGraph) Modules() iter.Seq[*ModuleRecord] {
	return func(yield func(*ModuleRecord) bool) {
		for _, id := range g.order {
			if !yield(g.modules[id]) {
				return
			}
		}
	}
}

// Len returns the number of modules in the graph.
func (g *ModuleGraph) Len() int {
	return len(g.order)
}

// AddEntry registers a named entry module.
func (g *ModuleGraph) AddEntry(name string, id ModuleID) error {
	if _, ok := g.modules[id]; !ok {
		return zerr.With(zerr.With(ErrModuleNotFound, "entry", name), "module", id.String())
	}
	g.entries[name] = id
	return nil
}

// Entries iterates over the named entries in sorted name order.
func (g *ModuleGraph) Entries() iter.Seq2[string, ModuleID] {
	return func(yield func(string, ModuleID) bool) {
		for _, name := range slices.Sorted(maps.Keys(g.entries)) {
			if !yield(name, g.entries[name]) {
				return
			}
		}
	}
}

// EntryCount returns the number of named entries.
func (g *ModuleGraph) EntryCount() int {
	return len(g.entries)
}

// AddEdge records a reference from e.Owner. The owner must exist; the target may be zero.
func (g *ModuleGraph) AddEdge(e ReferenceEdge) error {
	if _, ok := g.modules[e.Owner]; !ok {
		return zerr.With(ErrModuleNotFound, "module", e.Owner.String())
	}
	if !e.Target.IsZero() {
		if _, ok := g.modules[e.Target]; !ok {
			return zerr.With(ErrModuleNotFound, "module", e.Target.String())
		}
	}
	g.edges[e.Owner] = append(g.edges[e.Owner], e)
	return nil
}

// Edges returns the references made by owner in source order.
func (g *ModuleGraph) Edges(owner ModuleID) []ReferenceEdge {
	return g.edges[owner]
}

// Reachable iterates depth-first over modules reachable from start, start included.
// Each module is yielded once; cycles are allowed.
func (g *ModuleGraph) Reachable(start ModuleID) iter.Seq[*ModuleRecord] {
	return func(yield func(*ModuleRecord) bool) {
		visited := make(map[ModuleID]bool)
		stack := []ModuleID{start}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[id] {
				continue
			}
			visited[id] = true

			m, ok := g.modules[id]
			if !ok {
				continue
			}
			if !yield(m) {
				return
			}

			// Push in reverse so targets are visited in source order.
			edges := g.edges[id]
			for i := len(edges) - 1; i >= 0; i-- {
				if t := edges[i].Target; !t.IsZero() && !visited[t] {
					stack = append(stack, t)
				}
			}
		}
	}
}

// Units returns the current partition, or nil before partitioning.
func (g *ModuleGraph) Units() *UnitSet {
	return g.units
}

// SwapUnits atomically replaces the graph's partition.
func (g *ModuleGraph) SwapUnits(units *UnitSet) {
	g.units = units
}

// UnitOf returns the unit a module is assigned to in the current partition.
func (g *ModuleGraph) UnitOf(id ModuleID) (*OutputUnit, bool) {
	if g.units == nil {
		return nil, false
	}
	return g.units.UnitOf(id)
}

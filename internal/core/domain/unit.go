package domain

import (
	"iter"
	"maps"
	"slices"
)

// OutputUnit is one emitted file holding the modules that normalize to its path.
type OutputUnit struct {
	// Path is the forward-slash path relative to the target root.
	Path string
	// Kind is the kind of the first module assigned to the unit.
	Kind ModuleKind
	// Modules lists the assigned modules in assignment order.
	Modules []ModuleID
	// Entry marks the unit as an entry point of its own.
	Entry bool
}

// UnitSet is an immutable partition of a module graph into output units.
type UnitSet struct {
	units      map[string]*OutputUnit
	assignment map[ModuleID]string
}

// NewUnitSet freezes the given units into a UnitSet.
// The assignment is derived from each unit's module list.
func NewUnitSet(units []*OutputUnit) *UnitSet {
	s := &UnitSet{
		units:      make(map[string]*OutputUnit, len(units)),
		assignment: make(map[ModuleID]string),
	}
	for _, u := range units {
		frozen := *u
		frozen.Modules = slices.Clone(u.Modules)
		s.units[u.Path] = &frozen
		for _, id := range u.Modules {
			s.assignment[id] = u.Path
		}
	}
	return s
}

// Get returns the unit at path.
func (s *UnitSet) Get(path string) (*OutputUnit, bool) {
	u, ok := s.units[path]
	return u, ok
}

// UnitOf returns the unit a module is assigned to.
func (s *UnitSet) UnitOf(id ModuleID) (*OutputUnit, bool) {
	path, ok := s.assignment[id]
	if !ok {
		return nil, false
	}
	return s.units[path], true
}

// Paths returns all unit paths in sorted order.
func (s *UnitSet) Paths() []string {
	return slices.Sorted(maps.Keys(s.units))
}

// All iterates over the units in sorted path order.
func (s *UnitSet) All() iter.Seq[*OutputUnit] {
	return func(yield func(*OutputUnit) bool) {
		for _, p := range s.Paths() {
			if !yield(s.units[p]) {
				return
			}
		}
	}
}

// Len returns the number of units.
func (s *UnitSet) Len() int {
	return len(s.units)
}

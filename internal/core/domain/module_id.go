package domain

import "unique"

// ModuleID identifies a module by its interned absolute source path.
// Module paths repeat across edges, units and manifests, so they are interned once.
type ModuleID struct {
	h unique.Handle[string]
}

// NewModuleID interns path and returns its ModuleID.
func NewModuleID(path string) ModuleID {
	return ModuleID{h: unique.Make(path)}
}

// String returns the module path, or "" for the zero ID.
func (id ModuleID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether the ID refers to no module.
func (id ModuleID) IsZero() bool {
	var zero unique.Handle[string]
	return id.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (id ModuleID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ModuleID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*id = ModuleID{}
		return nil
	}
	id.h = unique.Make(string(text))
	return nil
}

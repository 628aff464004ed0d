package domain

import "time"

// EmitRecord remembers what was last written to an output path.
type EmitRecord struct {
	Path      string    `json:"path,omitzero"`
	Hash      string    `json:"hash,omitzero"`
	Size      int       `json:"size,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

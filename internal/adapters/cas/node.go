package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unbundle/internal/core/ports"
)

// NodeID is the unique identifier for the emit store Graft node.
const NodeID graft.ID = "adapter.emit_store"

func init() {
	graft.Register(graft.Node[ports.EmitStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EmitStore, error) {
			return NewStore()
		},
	})
}

package frontend

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unbundle/internal/adapters/fs"
	"go.trai.ch/unbundle/internal/adapters/logger"
	"go.trai.ch/unbundle/internal/core/ports"
)

// NodeID is the unique identifier for the graph loader Graft node.
const NodeID graft.ID = "adapter.frontend"

func init() {
	graft.Register(graft.Node[ports.GraphLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ResolverFactoryNodeID, fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.GraphLoader, error) {
			resolvers, err := graft.Dep[ports.ResolverFactory](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(resolvers, hasher, log), nil
		},
	})
}

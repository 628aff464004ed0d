package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unbundle/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/unbundle/internal/adapters/frontend"  //nolint:depguard // Wired in app layer
	"go.trai.ch/unbundle/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/unbundle/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/unbundle/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/unbundle/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/unbundle/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/unbundle/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			frontend.NodeID,
			fs.ResolverFactoryNodeID,
			fs.ManifestReaderNodeID,
			fs.CopierNodeID,
			fs.WriterNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			linear.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(a, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	graphLoader, err := graft.Dep[ports.GraphLoader](ctx)
	if err != nil {
		return nil, err
	}
	resolvers, err := graft.Dep[ports.ResolverFactory](ctx)
	if err != nil {
		return nil, err
	}
	manifests, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}
	copier, err := graft.Dep[ports.TreeCopier](ctx)
	if err != nil {
		return nil, err
	}
	writer, err := graft.Dep[ports.OutputWriter](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, graphLoader, resolvers, manifests, copier, writer, log, tracer, renderer, w), nil
}

package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/unbundle/internal/adapters/cas"
	"go.trai.ch/unbundle/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the directory walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the content hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// ManifestReaderNodeID is the unique identifier for the package manifest reader Graft node.
	ManifestReaderNodeID graft.ID = "adapter.fs.manifest_reader"
	// ResolverFactoryNodeID is the unique identifier for the path resolver factory Graft node.
	ResolverFactoryNodeID graft.ID = "adapter.fs.resolver_factory"
	// CopierNodeID is the unique identifier for the tree copier Graft node.
	CopierNodeID graft.ID = "adapter.fs.copier"
	// WriterNodeID is the unique identifier for the output writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        ManifestReaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestReader, error) {
			return NewManifestReader(DefaultManifestCacheSize)
		},
	})

	graft.Register(graft.Node[ports.ResolverFactory]{
		ID:        ResolverFactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ManifestReaderNodeID},
		Run: func(ctx context.Context) (ports.ResolverFactory, error) {
			manifests, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolverFactory(manifests), nil
		},
	})

	graft.Register(graft.Node[ports.TreeCopier]{
		ID:        CopierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TreeCopier, error) {
			return NewCopier(), nil
		},
	})

	graft.Register(graft.Node[ports.OutputWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID, HasherNodeID},
		Run: func(ctx context.Context) (ports.OutputWriter, error) {
			store, err := graft.Dep[ports.EmitStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewWriter(store, hasher, NewVerifier()), nil
		},
	})
}

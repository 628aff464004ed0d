package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tidwall/gjson"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestReader = (*ManifestReader)(nil)

// DefaultManifestCacheSize bounds the number of parsed manifests kept in memory.
const DefaultManifestCacheSize = 4096

type cachedManifest struct {
	modTime  time.Time
	size     int64
	manifest *domain.Manifest
}

// ManifestReader reads package manifests, caching parsed results until the file changes.
type ManifestReader struct {
	cache *lru.Cache[string, cachedManifest]
}

// NewManifestReader creates a ManifestReader holding up to size parsed manifests.
func NewManifestReader(size int) (*ManifestReader, error) {
	cache, err := lru.New[string, cachedManifest](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create manifest cache")
	}
	return &ManifestReader{cache: cache}, nil
}

// Read parses the manifest at path. It returns nil, nil if the file does not exist.
func (r *ManifestReader) Read(path string) (*domain.Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		r.cache.Remove(path)
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	if cached, ok := r.cache.Get(path); ok && cached.modTime.Equal(info.ModTime()) && cached.size == info.Size() {
		return cached.manifest, nil
	}

	raw, err := os.ReadFile(path) //nolint:gosec // manifest paths come from module resolution
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	manifest, err := parseManifest(path, raw)
	if err != nil {
		return nil, err
	}

	r.cache.Add(path, cachedManifest{modTime: info.ModTime(), size: info.Size(), manifest: manifest})
	return manifest, nil
}

func parseManifest(path string, raw []byte) (*domain.Manifest, error) {
	if !gjson.ValidBytes(raw) {
		return nil, zerr.With(domain.ErrManifestParseFailed, "path", path)
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, zerr.With(domain.ErrManifestParseFailed, "path", path)
	}

	var deps []string
	doc.Get("dependencies").ForEach(func(key, _ gjson.Result) bool {
		deps = append(deps, key.String())
		return true
	})
	slices.Sort(deps)
	deps = slices.Compact(deps)

	return &domain.Manifest{
		Path:         path,
		Name:         doc.Get("name").String(),
		Dependencies: deps,
		Raw:          raw,
	}, nil
}

package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.PathResolver    = (*NodeResolver)(nil)
	_ ports.ResolverFactory = (*ResolverFactory)(nil)
)

// NodeResolver implements the Node.js module resolution algorithm:
// exact file, file plus extension, package manifest entry, then index file,
// searching node_modules directories upward for bare requests.
type NodeResolver struct {
	manifests  ports.ManifestReader
	extensions []string
	mainFields []string
}

// NewNodeResolver creates a NodeResolver trying extensions in order and reading
// package entries from mainFields in priority order.
func NewNodeResolver(manifests ports.ManifestReader, extensions, mainFields []string) *NodeResolver {
	return &NodeResolver{
		manifests:  manifests,
		extensions: extensions,
		mainFields: mainFields,
	}
}

// ResolverFactory builds NodeResolvers sharing one manifest reader.
type ResolverFactory struct {
	manifests ports.ManifestReader
}

// NewResolverFactory creates a new ResolverFactory.
func NewResolverFactory(manifests ports.ManifestReader) *ResolverFactory {
	return &ResolverFactory{manifests: manifests}
}

// NewResolver returns a resolver using the configured extensions and main fields.
func (f *ResolverFactory) NewResolver(cfg *domain.Config) ports.PathResolver {
	return NewNodeResolver(f.manifests, cfg.ExtensionsOrDefault(), cfg.MainFieldsOrDefault())
}

// Resolve returns the absolute file request refers to when required from fromDir.
func (r *NodeResolver) Resolve(request, fromDir string) (string, error) {
	if isPathRequest(request) {
		base := request
		if !filepath.IsAbs(base) {
			base = filepath.Join(fromDir, base)
		}
		if found, ok := r.loadAsFileOrDirectory(base); ok {
			return found, nil
		}
		return "", unresolvable(request, fromDir)
	}

	for _, dir := range vendorDirs(fromDir) {
		if found, ok := r.loadAsFileOrDirectory(filepath.Join(dir, filepath.FromSlash(request))); ok {
			return found, nil
		}
	}
	return "", unresolvable(request, fromDir)
}

// LocatePackage walks up from fromDir and returns the first node_modules/<name> directory.
func (r *NodeResolver) LocatePackage(name, fromDir string) (string, bool) {
	for _, dir := range vendorDirs(fromDir) {
		candidate := filepath.Join(dir, filepath.FromSlash(name))
		if isDir(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *NodeResolver) loadAsFileOrDirectory(p string) (string, bool) {
	if found, ok := r.loadAsFile(p); ok {
		return found, true
	}
	return r.loadAsDirectory(p)
}

func (r *NodeResolver) loadAsFile(p string) (string, bool) {
	if isFile(p) {
		return p, true
	}
	for _, ext := range r.extensions {
		if isFile(p + ext) {
			return p + ext, true
		}
	}
	return "", false
}

func (r *NodeResolver) loadAsDirectory(dir string) (string, bool) {
	if !isDir(dir) {
		return "", false
	}

	manifest, err := r.manifests.Read(filepath.Join(dir, domain.ManifestFileName))
	if err == nil && manifest != nil {
		for _, field := range r.mainFields {
			entry := gjson.GetBytes(manifest.Raw, gjson.Escape(field))
			if entry.Type != gjson.String || entry.Str == "" {
				continue
			}
			target := filepath.Join(dir, filepath.FromSlash(entry.Str))
			if found, ok := r.loadAsFile(target); ok {
				return found, true
			}
			if found, ok := r.loadIndex(target); ok {
				return found, true
			}
		}
	}

	return r.loadIndex(dir)
}

func (r *NodeResolver) loadIndex(dir string) (string, bool) {
	index := filepath.Join(dir, strings.TrimSuffix(domain.DefaultEntryFile, filepath.Ext(domain.DefaultEntryFile)))
	for _, ext := range r.extensions {
		if isFile(index + ext) {
			return index + ext, true
		}
	}
	return "", false
}

// vendorDirs lists the node_modules directories searched from dir, nearest first.
// Directories that are themselves named node_modules get no nested lookup.
func vendorDirs(dir string) []string {
	var dirs []string
	current := filepath.Clean(dir)
	for {
		if filepath.Base(current) != domain.VendorDirName {
			dirs = append(dirs, filepath.Join(current, domain.VendorDirName))
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dirs
		}
		current = parent
	}
}

func isPathRequest(request string) bool {
	return request == "." || request == ".." ||
		strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../") ||
		filepath.IsAbs(request)
}

func unresolvable(request, fromDir string) error {
	err := zerr.With(zerr.Wrap(domain.ErrUnresolvableReference, "cannot find module"), "request", request)
	return zerr.With(err, "from", fromDir)
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

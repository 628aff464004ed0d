package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/zerr"
)

// vendorExcludes are never copied out of a vendored package.
var vendorExcludes = []string{
	"**/.git/**",
	"**/.svn/**",
	"**/.hg/**",
	"**/.idea/**",
	"**/.vscode/**",
	"**/.DS_Store",
	"**/*.log",
	"**/.happypack/**",
}

// ResolveClosure walks the project's declared dependencies transitively and returns the
// package directories to vendor. Names that cannot be located are omitted, and a project
// without a manifest gets an empty closure.
func (p *Pipeline) ResolveClosure(ctx context.Context) (*domain.DependencyClosure, error) {
	root := p.projectRoot(p.graph)
	project, err := p.manifests.Read(filepath.Join(root, domain.ManifestFileName))
	if err != nil {
		return nil, err
	}
	closure := domain.NewDependencyClosure()
	if project == nil {
		p.logger.Warn(fmt.Sprintf("%s: no %s, vendoring no dependencies", domain.ErrProjectManifestMissing, filepath.Join(root, domain.ManifestFileName)))
		return closure, nil
	}

	visited := make(map[string]bool)
	if err := p.collectDependencies(ctx, closure, visited, project.Dependencies, root); err != nil {
		return nil, err
	}
	return closure, nil
}

func (p *Pipeline) collectDependencies(
	ctx context.Context,
	closure *domain.DependencyClosure,
	visited map[string]bool,
	names []string,
	fromDir string,
) error {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	for _, name := range sorted {
		if err := ctx.Err(); err != nil {
			return err
		}
		if visited[name] || p.cfg.IsExcludedDependency(name) {
			continue
		}
		visited[name] = true

		dir, ok := p.resolver.LocatePackage(name, fromDir)
		if !ok {
			p.logger.Warn(fmt.Sprintf("dependency %s not found, skipping", name))
			continue
		}
		closure.Add(name, dir)

		manifest, err := p.manifests.Read(filepath.Join(dir, domain.ManifestFileName))
		if err != nil {
			p.logger.Warn(fmt.Sprintf("skipping dependencies of %s: %v", name, err))
			continue
		}
		if manifest == nil {
			continue
		}
		if err := p.collectDependencies(ctx, closure, visited, manifest.Dependencies, dir); err != nil {
			return err
		}
	}
	return nil
}

// CopyClosure copies every package of the closure to <target>/node_modules, mirroring its
// vendor-relative location, and copies the tool binaries directory verbatim.
// Packages nested inside another closure package travel with their parent.
func (p *Pipeline) CopyClosure(ctx context.Context, closure *domain.DependencyClosure) ([]string, error) {
	dest := filepath.Join(p.cfg.TargetRoot, domain.VendorDirName)
	tracked := make(map[string]bool, closure.Len())
	for _, dir := range closure.All() {
		if rel, ok := p.closureRelative(dir); ok {
			tracked[rel] = true
		}
	}

	compiled := p.compiledSources()
	var copied []string
	for name, dir := range closure.All() {
		rel, ok := p.closureRelative(dir)
		if !ok || p.nestedInClosure(rel, tracked) {
			continue
		}
		if err := p.copier.CopyTree(ctx, dir, filepath.Join(dest, filepath.FromSlash(rel)), p.vendorSkip(dir, rel, tracked, compiled)); err != nil {
			return copied, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "package", name)
		}
		copied = append(copied, name)
	}

	if bin, ok := p.locateBinDir(); ok {
		if err := p.copier.CopyTree(ctx, bin, filepath.Join(dest, domain.BinDirName), nil); err != nil {
			return copied, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "dir", bin)
		}
	}
	return copied, nil
}

// closureRelative returns the location of a package directory below the project's vendor
// root, keeping nested vendor segments. Packages hoisted above the project fall back to
// their last vendor segment.
func (p *Pipeline) closureRelative(dir string) (string, bool) {
	vendorRoot := filepath.Join(p.projectRoot(p.graph), domain.VendorDirName)
	if IsWithin(vendorRoot, dir) {
		rel := RelativeTo(vendorRoot, dir)
		return rel, rel != "."
	}
	return VendorRelative(dir)
}

// nestedInClosure reports whether a parent package of rel is itself tracked.
func (p *Pipeline) nestedInClosure(rel string, tracked map[string]bool) bool {
	for i := strings.LastIndex(rel, vendorAnchor); i >= 0; i = strings.LastIndex(rel[:i], vendorAnchor) {
		if tracked[rel[:i]] {
			return true
		}
	}
	return false
}

// vendorSkip excludes metadata, the output tree, nested vendor packages outside the closure
// and sources compiled into units, which the unit writes emit.
func (p *Pipeline) vendorSkip(srcDir, rel string, tracked, compiled map[string]bool) ports.SkipFunc {
	target := p.absTarget()
	patterns := slices.Concat(vendorExcludes, p.cfg.Ignores)

	return func(entry string, info fs.FileInfo) bool {
		src := filepath.Join(srcDir, filepath.FromSlash(entry))
		abs, _ := filepath.Abs(src)
		if target != "" && IsWithin(target, abs) {
			return true
		}
		if !info.IsDir() && compiled[src] {
			return true
		}
		if matchesAny(patterns, entry, info.IsDir()) {
			return true
		}
		if info.IsDir() && isNestedPackage(entry) {
			return !tracked[rel+"/"+entry]
		}
		return false
	}
}

// isNestedPackage reports whether a directory entry sits at a package position directly
// below a nested vendor directory. "node_modules/debug" and "node_modules/@scope/pkg" are
// packages; "node_modules/@scope" and "node_modules/.bin" are not.
func isNestedPackage(entry string) bool {
	s := "/" + entry
	i := strings.LastIndex(s, vendorAnchor)
	if i < 0 {
		return false
	}
	rest := s[i+len(vendorAnchor):]
	if rest == domain.BinDirName {
		return false
	}
	if strings.HasPrefix(rest, "@") {
		return strings.Count(rest, "/") == 1
	}
	return !strings.Contains(rest, "/")
}

// locateBinDir finds the tool binaries directory of the vendor root nearest to the project.
func (p *Pipeline) locateBinDir() (string, bool) {
	return p.resolver.LocatePackage(domain.BinDirName, p.projectRoot(p.graph))
}

// absTarget returns the absolute output root, or "" when none is configured.
func (p *Pipeline) absTarget() string {
	if p.cfg.TargetRoot == "" {
		return ""
	}
	abs, err := filepath.Abs(p.cfg.TargetRoot)
	if err != nil {
		return p.cfg.TargetRoot
	}
	return abs
}

package pipeline

import (
	"fmt"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.trai.ch/unbundle/internal/core/domain"
)

// stageManifest stages the manifest of the package enclosing m, at most once per pass.
// Missing or unreadable manifests are skipped.
func (p *Pipeline) stageManifest(m *domain.ModuleRecord, unitPath string) {
	src := StripLoaderPrefix(m.Path)
	pkgDir, pkgName, ok := PackageRoot(src)
	if !ok {
		return
	}

	for dir := filepath.Dir(src); IsWithin(pkgDir, dir); dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, domain.ManifestFileName)
		if _, done := p.staged[candidate]; done {
			return
		}

		manifest, err := p.manifests.Read(candidate)
		if err != nil {
			p.logger.Warn(fmt.Sprintf("skipping manifest %s: %v", candidate, err))
			return
		}
		if manifest == nil {
			if dir == pkgDir {
				return
			}
			continue
		}

		entry := p.entryValue(manifest, dir)
		content, err := sjson.SetBytes(manifest.Raw, domain.EntryField, entry)
		if err != nil {
			p.logger.Warn(fmt.Sprintf("skipping manifest %s: %v", candidate, err))
			return
		}

		name := manifest.Name
		if name == "" {
			name = pkgName
		}
		p.staged[candidate] = &domain.VendorManifestEntry{
			ManifestPath: candidate,
			PackageName:  name,
			Entry:        entry,
			Destination:  RelativeTo(p.projectRoot(p.graph), candidate),
			Unit:         unitPath,
			Content:      content,
		}
		return
	}
}

// entryValue returns the corrected entry for a manifest in dir: the first non-empty
// configured field, resolved on disk and mapped to its emitted name.
func (p *Pipeline) entryValue(m *domain.Manifest, dir string) string {
	raw := ""
	for _, field := range p.cfg.MainFieldsOrDefault() {
		v := gjson.GetBytes(m.Raw, gjson.Escape(field))
		if v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
			raw = v.String()
			break
		}
	}
	if raw == "" {
		raw = domain.DefaultEntryFile
	}

	rel := path.Clean(strings.TrimPrefix(ToSlash(raw), "./"))
	if resolved, err := p.resolver.Resolve("./"+rel, dir); err == nil {
		rel = RelativeTo(dir, resolved)
	}
	return domain.OutputName(rel, domain.KindOf(rel))
}

// StagedManifests returns the manifests staged during the current pass, sorted by source path.
func (p *Pipeline) StagedManifests() []*domain.VendorManifestEntry {
	keys := slices.Sorted(maps.Keys(p.staged))
	out := make([]*domain.VendorManifestEntry, 0, len(keys))
	for _, k := range keys {
		out = append(out, p.staged[k])
	}
	return out
}

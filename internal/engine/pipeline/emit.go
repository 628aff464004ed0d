package pipeline

import (
	"context"
	"path"
	"path/filepath"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/zerr"
)

// EmitReport summarizes the writes of one pass.
type EmitReport struct {
	// Units is the number of unit files written.
	Units int
	// Manifests is the number of vendor manifests written. Manifests whose entry is
	// not part of the output are dropped.
	Manifests int
	// Packages lists the vendored packages copied, in resolution order.
	Packages []string
	// Unchanged is the number of files skipped because their content was already current.
	Unchanged int
}

// Emit writes the pass result below the target root.
// The dependency closure is resolved completely before anything is written.
func (p *Pipeline) Emit(ctx context.Context, tree *domain.OutputTree) (*EmitReport, error) {
	if p.phase < phasePartitioned {
		return nil, domain.ErrPhaseOrder
	}

	var closure *domain.DependencyClosure
	if p.cfg.CopyNodeModules {
		c, err := p.ResolveClosure(ctx)
		if err != nil {
			return nil, err
		}
		closure = c
	}

	report := &EmitReport{}
	var vendored []string
	if closure != nil {
		copied, err := p.CopyClosure(ctx, closure)
		report.Packages = copied
		if err != nil {
			return report, err
		}
		for _, name := range copied {
			if dir, ok := closure.Dir(name); ok {
				vendored = append(vendored, dir)
			}
		}
	}

	if p.cfg.CopyProjectFiles {
		if err := p.StageProjectFiles(ctx); err != nil {
			return report, err
		}
	}

	for rel, data := range tree.Files() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		changed, err := p.write(rel, data)
		if err != nil {
			return report, err
		}
		if changed {
			report.Units++
		} else {
			report.Unchanged++
		}
	}

	for _, m := range p.StagedManifests() {
		if !entryEmitted(m, tree, vendored) {
			continue
		}
		changed, err := p.write(m.Destination, m.Content)
		if err != nil {
			return report, zerr.With(err, "package", m.PackageName)
		}
		if changed {
			report.Manifests++
		} else {
			report.Unchanged++
		}
	}

	p.phase = phaseEmitted
	return report, nil
}

// entryEmitted reports whether the corrected entry of m is present in the output, either
// as a rendered unit or inside a vendored package copy.
func entryEmitted(m *domain.VendorManifestEntry, tree *domain.OutputTree, vendored []string) bool {
	if _, ok := tree.Get(path.Join(path.Dir(m.Destination), m.Entry)); ok {
		return true
	}
	manifestDir := filepath.Dir(m.ManifestPath)
	for _, dir := range vendored {
		if IsWithin(dir, manifestDir) {
			return true
		}
	}
	return false
}

func (p *Pipeline) write(rel string, data []byte) (bool, error) {
	changed, err := p.writer.Write(p.cfg.TargetRoot, rel, data)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrWriteFailed.Error()), "path", rel)
	}
	return changed, nil
}

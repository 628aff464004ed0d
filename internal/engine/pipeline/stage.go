package pipeline

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/zerr"
)

var projectExcludes = []string{
	".gitignore",
	".eslintrc.js",
	".git/**",
	"logs/**",
	".vscode/**",
	".happypack/**",
	domain.VendorDirName + "/**",
	domain.StateDirName + "/**",
}

// ProjectIgnores returns the exclusion globs applied when staging project files.
// The output root is excluded when it lies inside the project.
func (p *Pipeline) ProjectIgnores() []string {
	root := p.projectRoot(p.graph)
	first := ".git/**"
	if target := p.absTarget(); target != "" {
		absRoot, err := filepath.Abs(root)
		if err == nil && IsWithin(absRoot, target) && absRoot != target {
			first = RelativeTo(absRoot, target) + "/**"
		}
	}
	return slices.Concat([]string{first}, projectExcludes, p.cfg.Ignores)
}

// compiledSources returns the cleaned source paths of every module assigned to a unit.
func (p *Pipeline) compiledSources() map[string]bool {
	compiled := make(map[string]bool)
	for u := range p.graph.Units().All() {
		for _, id := range u.Modules {
			if m, ok := p.graph.Module(id); ok {
				compiled[filepath.Clean(StripLoaderPrefix(m.Path))] = true
			}
		}
	}
	return compiled
}

// StageProjectFiles copies project files verbatim into the output root.
// Files compiled into units are left to the unit writes.
func (p *Pipeline) StageProjectFiles(ctx context.Context) error {
	root := p.projectRoot(p.graph)
	patterns := p.ProjectIgnores()

	compiled := p.compiledSources()

	skip := func(entry string, info fs.FileInfo) bool {
		entry = strings.TrimPrefix(entry, "./")
		if matchesAny(patterns, entry, info.IsDir()) {
			return true
		}
		return !info.IsDir() && compiled[filepath.Join(root, filepath.FromSlash(entry))]
	}

	if err := p.copier.CopyTree(ctx, root, p.cfg.TargetRoot, skip); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "root", root)
	}
	return nil
}

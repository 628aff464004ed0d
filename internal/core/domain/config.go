package domain

import (
	"cmp"
	"slices"
	"strings"
)

var (
	// DefaultMainFields is the manifest field priority used when none is configured.
	DefaultMainFields = []string{EntryField}

	// DefaultExtensions are the extensions tried by module resolution when none are configured.
	DefaultExtensions = []string{".js", ".json", ".node"}

	// BuildToolPackages are never resolved into the dependency closure.
	BuildToolPackages = []string{
		"webpack",
		"webpack-cli",
		"webpack-sources",
		"copy-webpack-plugin",
		"babel-core",
		"@babel/core",
	}
)

// Config is the resolved build configuration.
// It is created once per process and is read-only afterwards.
type Config struct {
	// ProjectRoot is the root all output paths are computed relative to.
	ProjectRoot string
	// TargetRoot is the output root.
	TargetRoot string
	// CDNName is the variable prefixed to asset URLs. Empty selects PublicPath.
	CDNName string
	// PublicPath is prefixed to asset URLs when no CDN name is set.
	PublicPath string
	// Ignores are additional exclusion globs for verbatim copies.
	Ignores []string
	// CopyNodeModules enables the dependency closure copy.
	CopyNodeModules bool
	// CopyProjectFiles enables verbatim staging of project files.
	CopyProjectFiles bool
	// MainFields is the manifest entry field priority.
	MainFields []string
	// Aliases maps request prefixes to replacements.
	Aliases map[string]string
	// ExcludeDependencies are dependency names never resolved or copied.
	ExcludeDependencies []string
	// Extensions are the extensions tried by module resolution.
	Extensions []string
	// Entries maps entry names to paths relative to ProjectRoot.
	Entries map[string]string
}

// MainFieldsOrDefault returns the configured field priority or DefaultMainFields.
func (c *Config) MainFieldsOrDefault() []string {
	if len(c.MainFields) == 0 {
		return DefaultMainFields
	}
	return c.MainFields
}

// ExtensionsOrDefault returns the configured extensions or DefaultExtensions.
func (c *Config) ExtensionsOrDefault() []string {
	if len(c.Extensions) == 0 {
		return DefaultExtensions
	}
	return c.Extensions
}

// IsExcludedDependency reports whether name must stay out of the dependency closure.
func (c *Config) IsExcludedDependency(name string) bool {
	return slices.Contains(BuildToolPackages, name) || slices.Contains(c.ExcludeDependencies, name)
}

// ExpandAlias maps request through the alias table using the longest matching key.
// A key matches the whole request or a prefix followed by "/".
func (c *Config) ExpandAlias(request string) (string, bool) {
	best := ""
	found := false
	for k := range c.Aliases {
		if request != k && !strings.HasPrefix(request, k+"/") {
			continue
		}
		if !found || cmp.Or(cmp.Compare(len(k), len(best)), cmp.Compare(best, k)) > 0 {
			best, found = k, true
		}
	}
	if !found {
		return request, false
	}
	return c.Aliases[best] + request[len(best):], true
}

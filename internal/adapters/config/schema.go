package config

// Buildfile represents the structure of the unbundle.yaml configuration file.
type Buildfile struct {
	Version string `yaml:"version"`
	// ProjectRoot is the root output paths are computed from. ContextPath is accepted as an alias.
	ProjectRoot      string   `yaml:"projectRoot"`
	ContextPath      string   `yaml:"contextPath"`
	TargetRoot       string   `yaml:"targetRoot"`
	CDNName          string   `yaml:"cdnName"`
	PublicPath       string   `yaml:"publicPath"`
	Ignores          []string `yaml:"ignores"`
	CopyNodeModules  bool     `yaml:"copyNodeModules"`
	CopyProjectFiles bool     `yaml:"copyProjectFiles"`
	// MainFields is the manifest entry field priority.
	MainFields          []string          `yaml:"mainFields"`
	Aliases             map[string]string `yaml:"aliases"`
	ExcludeDependencies []string          `yaml:"excludeDependencies"`
	Extensions          []string          `yaml:"extensions"`
	Entries             map[string]string `yaml:"entries"`
}

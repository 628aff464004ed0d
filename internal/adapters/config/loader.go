// Package config provides the configuration loader for unbundle.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file.
const (
	EnvTargetRoot      = "UNBUNDLE_TARGET_ROOT"
	EnvCDNName         = "UNBUNDLE_CDN_NAME"
	EnvPublicPath      = "UNBUNDLE_PUBLIC_PATH"
	EnvCopyNodeModules = "UNBUNDLE_COPY_NODE_MODULES"
)

// DefaultTargetDir is the output directory used when targetRoot is not configured.
const DefaultTargetDir = "dist"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// LookupEnv reads process environment variables. It defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, LookupEnv: os.LookupEnv}
}

// Load reads the configuration file found from cwd, or the file at path when given,
// and returns the resolved configuration with absolute roots.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	configPath := path
	if configPath == "" {
		found, err := l.findConfiguration(cwd)
		if err != nil {
			return nil, err
		}
		configPath = found
	} else if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(cwd, configPath)
	}

	var buildfile Buildfile
	if err := readAndUnmarshalYAML(configPath, &buildfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if err := l.applyEnvOverrides(filepath.Dir(configPath), &buildfile); err != nil {
		return nil, err
	}

	return l.buildConfig(configPath, &buildfile)
}

// DiscoverRoot walks up from cwd to find the directory containing unbundle.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) buildConfig(configPath string, bf *Buildfile) (*domain.Config, error) {
	configuredRoot := bf.ProjectRoot
	if configuredRoot == "" {
		configuredRoot = bf.ContextPath
	} else if bf.ContextPath != "" && bf.ContextPath != bf.ProjectRoot {
		l.Logger.Warn(fmt.Sprintf("'contextPath' in %s is ignored because 'projectRoot' is set", domain.ConfigFileName))
	}
	projectRoot := resolveRoot(configPath, configuredRoot)

	targetRoot := bf.TargetRoot
	if targetRoot == "" {
		targetRoot = DefaultTargetDir
	}
	if !filepath.IsAbs(targetRoot) {
		targetRoot = filepath.Join(filepath.Dir(configPath), targetRoot)
	}

	entries, err := resolveEntries(projectRoot, bf.Entries)
	if err != nil {
		return nil, err
	}

	return &domain.Config{
		ProjectRoot:         projectRoot,
		TargetRoot:          filepath.Clean(targetRoot),
		CDNName:             bf.CDNName,
		PublicPath:          bf.PublicPath,
		Ignores:             bf.Ignores,
		CopyNodeModules:     bf.CopyNodeModules,
		CopyProjectFiles:    bf.CopyProjectFiles,
		MainFields:          bf.MainFields,
		Aliases:             resolveAliases(projectRoot, bf.Aliases),
		ExcludeDependencies: bf.ExcludeDependencies,
		Extensions:          normalizeExtensions(bf.Extensions),
		Entries:             entries,
	}, nil
}

// applyEnvOverrides merges the .env file next to the config with the process environment.
// Process variables win over the file.
func (l *Loader) applyEnvOverrides(configDir string, bf *Buildfile) error {
	values := make(map[string]string)

	envPath := filepath.Join(configDir, domain.EnvFileName)
	fileValues, err := godotenv.Read(envPath)
	switch {
	case err == nil:
		maps.Copy(values, fileValues)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return zerr.With(zerr.Wrap(err, domain.ErrEnvFileReadFailed.Error()), "path", envPath)
	}

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range []string{EnvTargetRoot, EnvCDNName, EnvPublicPath, EnvCopyNodeModules} {
		if v, ok := lookup(key); ok {
			values[key] = v
		}
	}

	if v, ok := values[EnvTargetRoot]; ok && v != "" {
		bf.TargetRoot = v
	}
	if v, ok := values[EnvCDNName]; ok {
		bf.CDNName = v
	}
	if v, ok := values[EnvPublicPath]; ok {
		bf.PublicPath = v
	}
	if v, ok := values[EnvCopyNodeModules]; ok && v != "" {
		enabled, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			err := zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "variable", EnvCopyNodeModules)
			return zerr.With(err, "value", v)
		}
		bf.CopyNodeModules = enabled
	}
	return nil
}

// resolveEntries makes entry paths absolute and rejects entries outside the project.
// Without configured entries the project's default entry file is used.
func resolveEntries(projectRoot string, entries map[string]string) (map[string]string, error) {
	if len(entries) == 0 {
		return map[string]string{"main": filepath.Join(projectRoot, domain.DefaultEntryFile)}, nil
	}

	resolved := make(map[string]string, len(entries))
	for name, p := range entries {
		if strings.TrimSpace(p) == "" {
			return nil, zerr.With(domain.ErrInvalidEntry, "entry", name)
		}
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(projectRoot, p)
		}
		abs = filepath.Clean(abs)
		rel, err := filepath.Rel(projectRoot, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			err := zerr.With(domain.ErrInvalidEntry, "entry", name)
			return nil, zerr.With(err, "path", p)
		}
		resolved[name] = abs
	}
	return resolved, nil
}

// resolveAliases anchors relative alias targets at the project root.
// Targets that name packages are kept as written.
func resolveAliases(projectRoot string, aliases map[string]string) map[string]string {
	if len(aliases) == 0 {
		return nil
	}
	resolved := make(map[string]string, len(aliases))
	for k, v := range aliases {
		if strings.HasPrefix(v, "./") || strings.HasPrefix(v, "../") {
			v = filepath.Join(projectRoot, v)
		}
		resolved[k] = v
	}
	return resolved
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

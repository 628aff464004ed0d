package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/unbundle/internal/adapters/config"
	"go.trai.ch/unbundle/internal/core/domain"
	"go.trai.ch/unbundle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLoader_Load_FullConfig(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
version: "1"
projectRoot: src
targetRoot: build/server
cdnName: CDN_HOST
publicPath: /static/
copyNodeModules: true
copyProjectFiles: true
ignores:
  - "**/*.md"
mainFields: [module, main]
aliases:
  "@": ./src
  lodash: lodash-es
excludeDependencies: [nodemon]
extensions: [js, .jsx]
entries:
  server: server.js
  worker: jobs/worker.js
`
	createFile(t, tmpDir, domain.ConfigFileName, content)

	cfg, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "src"), cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(tmpDir, "build", "server"), cfg.TargetRoot)
	assert.Equal(t, "CDN_HOST", cfg.CDNName)
	assert.Equal(t, "/static/", cfg.PublicPath)
	assert.True(t, cfg.CopyNodeModules)
	assert.True(t, cfg.CopyProjectFiles)
	assert.Equal(t, []string{"**/*.md"}, cfg.Ignores)
	assert.Equal(t, []string{"module", "main"}, cfg.MainFields)
	assert.Equal(t, map[string]string{
		"@":      filepath.Join(tmpDir, "src", "src"),
		"lodash": "lodash-es",
	}, cfg.Aliases)
	assert.Equal(t, []string{"nodemon"}, cfg.ExcludeDependencies)
	assert.Equal(t, []string{".js", ".jsx"}, cfg.Extensions)
	assert.Equal(t, map[string]string{
		"server": filepath.Join(tmpDir, "src", "server.js"),
		"worker": filepath.Join(tmpDir, "src", "jobs", "worker.js"),
	}, cfg.Entries)
}

func TestLoader_Load_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	createFile(t, tmpDir, domain.ConfigFileName, "version: \"1\"\n")

	cfg, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, tmpDir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(tmpDir, config.DefaultTargetDir), cfg.TargetRoot)
	assert.False(t, cfg.CopyNodeModules)
	assert.Equal(t, domain.DefaultMainFields, cfg.MainFieldsOrDefault())
	assert.Equal(t, map[string]string{"main": filepath.Join(tmpDir, domain.DefaultEntryFile)}, cfg.Entries)
}

func TestLoader_Load_ContextPathAlias(t *testing.T) {
	tmpDir := t.TempDir()
	createFile(t, tmpDir, domain.ConfigFileName, "contextPath: app\n")

	cfg, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "app"), cfg.ProjectRoot)
}

func TestLoader_Load_ContextPathIgnoredWithProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	createFile(t, tmpDir, domain.ConfigFileName, "projectRoot: a\ncontextPath: b\n")

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)
	loader := config.NewLoader(mockLogger)
	loader.LookupEnv = func(string) (string, bool) { return "", false }

	cfg, err := loader.Load(tmpDir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "a"), cfg.ProjectRoot)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	createFile(t, tmpDir, "custom.yaml", "targetRoot: /srv/out\n")

	cfg, err := newLoader(t).Load(tmpDir, "custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/srv/out", cfg.TargetRoot)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			content: "entries: [unclosed",
			wantErr: domain.ErrConfigParseFailed.Error(),
		},
		{
			name:    "empty entry",
			content: "entries:\n  main: \"\"\n",
			wantErr: domain.ErrInvalidEntry.Error(),
		},
		{
			name:    "entry escaping the project",
			content: "entries:\n  main: ../outside.js\n",
			wantErr: domain.ErrInvalidEntry.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			createFile(t, tmpDir, domain.ConfigFileName, tt.content)

			_, err := newLoader(t).Load(tmpDir, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoader_Load_MissingExplicitPath(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir(), "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigReadFailed.Error())
}

func TestLoader_Load_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	createFile(t, tmpDir, domain.ConfigFileName, "targetRoot: dist\ncdnName: FROM_FILE\n")
	createFile(t, tmpDir, domain.EnvFileName, "UNBUNDLE_TARGET_ROOT=/env/out\nUNBUNDLE_CDN_NAME=FROM_DOTENV\nUNBUNDLE_COPY_NODE_MODULES=true\n")

	loader := newLoader(t)
	loader.LookupEnv = func(key string) (string, bool) {
		if key == config.EnvCDNName {
			return "FROM_PROCESS", true
		}
		return "", false
	}

	cfg, err := loader.Load(tmpDir, "")
	require.NoError(t, err)
	assert.Equal(t, "/env/out", cfg.TargetRoot)
	assert.Equal(t, "FROM_PROCESS", cfg.CDNName)
	assert.True(t, cfg.CopyNodeModules)
}

func TestLoader_Load_InvalidBoolOverride(t *testing.T) {
	tmpDir := t.TempDir()
	createFile(t, tmpDir, domain.ConfigFileName, "version: \"1\"\n")

	loader := newLoader(t)
	loader.LookupEnv = func(key string) (string, bool) {
		if key == config.EnvCopyNodeModules {
			return "maybe", true
		}
		return "", false
	}

	_, err := loader.Load(tmpDir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}

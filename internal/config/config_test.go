package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Packages.LocalPath)
	assert.NotEmpty(t, cfg.Packages.ReleasePath)
	assert.Equal(t, "build", cfg.Build.Directory)
	assert.Equal(t, "command", cfg.Build.System)
	assert.Equal(t, "./build.sh", cfg.Build.Command)
}

func TestLoad_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pkgforge.yaml")
	content := `
packages:
  local_path: /opt/pkg/local
  release_path: /opt/pkg/release
  search_path:
    - /opt/pkg/local
    - /opt/pkg/release
    - /opt/pkg/extra
build:
  directory: out
  command: make all
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/pkg/local", cfg.Packages.LocalPath)
	assert.Equal(t, "out", cfg.Build.Directory)
	assert.Equal(t, "make all", cfg.Build.Command)
	assert.Equal(t, []string{"/opt/pkg/local", "/opt/pkg/release", "/opt/pkg/extra"}, cfg.SearchPaths())
}

func TestNonLocalSearchPaths_ExcludesLocal(t *testing.T) {
	cfg := &Config{
		Packages: PackagesConfig{
			LocalPath:   "/l",
			ReleasePath: "/r",
			SearchPath:  []string{"/l", "/r", "/extra"},
		},
	}
	assert.Equal(t, []string{"/r", "/extra"}, cfg.NonLocalSearchPaths())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PKGFORGE_LOCAL_PACKAGES_PATH", "/env/local")
	t.Setenv("PKGFORGE_BUILD_COMMAND", "ninja")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/env/local", cfg.Packages.LocalPath)
	assert.Equal(t, "ninja", cfg.Build.Command)
}

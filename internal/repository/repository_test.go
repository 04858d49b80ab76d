package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/r", "P", "1.2.3"), InstallPath("/r", "P", "1.2.3"))
	assert.Equal(t, filepath.Join("/r", "P"), InstallPath("/r", "P", ""))

	// Deterministic and idempotent.
	assert.Equal(t, InstallPath("/r", "P", "1.2.3"), InstallPath("/r", "P", "1.2.3"))
}

func TestLatestVersion(t *testing.T) {
	root := t.TempDir()
	for _, v := range []string{"1.0.0", "1.10.0", "1.2.0"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", v), 0o755))
	}
	// Noise that must be ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", "not-a-version"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "2.0.0"), []byte("file"), 0o644))

	latest, ok, err := LatestVersion(root, "pkg")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1.10.0", latest.Original())
}

func TestLatestVersion_NoReleases(t *testing.T) {
	_, ok, err := LatestVersion(t.TempDir(), "pkg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVersions_Sorted(t *testing.T) {
	root := t.TempDir()
	for _, v := range []string{"2.0.0", "1.0.0", "1.5.0"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", v), 0o755))
	}

	vs, err := Versions(root, "pkg")
	require.NoError(t, err)
	require.Len(t, vs, 3)
	assert.Equal(t, "1.0.0", vs[0].Original())
	assert.Equal(t, "2.0.0", vs[2].Original())
}

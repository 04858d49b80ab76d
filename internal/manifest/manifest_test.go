package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0o644))
	return dir
}

func TestLoad_FullDescriptor(t *testing.T) {
	dir := writeManifest(t, `
name: mytool
version: 1.2.3
requires: [python-3]
build_requires: [cmake-3]
private_build_requires: [ninja]
variants:
  - [platform-linux]
  - [platform-windows]
config:
  build_directory: out
  release_hooks: [log]
`)

	pkg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "mytool", pkg.Name)
	assert.Equal(t, "1.2.3", pkg.Version)
	assert.Equal(t, "mytool-1.2.3", pkg.QualifiedName())
	assert.Equal(t, 2, pkg.NumVariants())
	assert.Equal(t, []int{0, 1}, pkg.VariantIndices())
	assert.Equal(t, "out", pkg.Config.BuildDirectory)
	assert.Equal(t, []string{"log"}, pkg.Config.ReleaseHooks)

	variants := pkg.Variants()
	require.Len(t, variants, 2)
	assert.Equal(t, 0, variants[0].Index)
	assert.Equal(t, []string{"python-3", "platform-linux"}, variants[0].Requires)
	assert.Equal(t,
		[]string{"python-3", "platform-linux", "cmake-3", "ninja"},
		variants[0].FullRequires())
	assert.Equal(t, "mytool-1.2.3[1]", variants[1].DisplayName(pkg))
}

func TestLoad_NoVariantsYieldsImplicitVariant(t *testing.T) {
	dir := writeManifest(t, `
name: solo
requires: [python-3]
`)

	pkg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 0, pkg.NumVariants())
	variants := pkg.Variants()
	require.Len(t, variants, 1)
	assert.Equal(t, -1, variants[0].Index)
	assert.Equal(t, []string{"python-3"}, variants[0].Requires)
	assert.Equal(t, "solo", variants[0].DisplayName(pkg))
}

func TestLoad_MissingDescriptor(t *testing.T) {
	_, err := Load(t.TempDir())
	var merr *InvalidManifestError
	require.ErrorAs(t, err, &merr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		pkg     Package
		wantErr bool
	}{
		{"valid", Package{Name: "a", Version: "1.0.0"}, false},
		{"unversioned", Package{Name: "a"}, false},
		{"missing name", Package{Version: "1.0.0"}, true},
		{"bad version", Package{Name: "a", Version: "not@a@version"}, true},
		{"empty variant", Package{Name: "a", VariantRequires: [][]string{{}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pkg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

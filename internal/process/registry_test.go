package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProcessTypes(t *testing.T) {
	names := ListProcessTypes()
	assert.Contains(t, names, "local")
	assert.Contains(t, names, "release")
	assert.IsIncreasing(t, names)
}

func TestCreate_UnknownProcessType(t *testing.T) {
	// An unregistered name is rejected before any package state is touched,
	// so no descriptor needs to exist on disk.
	_, err := Create("remote", Options{WorkingDir: t.TempDir()})

	var unknown *UnknownProcessTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "remote", unknown.Name)
	assert.Equal(t, ListProcessTypes(), unknown.Available)
}

func TestCreate_ReturnsRegisteredProcess(t *testing.T) {
	dir := writePackage(t, soloManifest)
	opts, _, _, _ := testOptions(t, dir)

	local, err := Create("local", opts)
	require.NoError(t, err)
	assert.IsType(t, &LocalProcess{}, local)

	release, err := Create("release", opts)
	require.NoError(t, err)
	assert.IsType(t, &ReleaseProcess{}, release)
}

func TestCreate_PropagatesHelperErrors(t *testing.T) {
	opts, _, _, _ := testOptions(t, t.TempDir())
	opts.Config = nil

	_, err := Create("local", opts)
	require.Error(t, err)
}

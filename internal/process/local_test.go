package process

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBuild_EndToEnd(t *testing.T) {
	dir := writePackage(t, soloManifest)
	opts, resolver, builder, reporter := testOptions(t, dir)

	proc, err := Create("local", opts)
	require.NoError(t, err)

	err = proc.Build(context.Background(), BuildOptions{Install: true})
	require.NoError(t, err)

	assert.Equal(t, 1, resolver.callCount())
	assert.Equal(t, 1, builder.callCount(), "exactly one backend invocation for a sole variant")

	// The sole implicit variant installs into the package root, no subdirectory.
	installed := filepath.Join(opts.Config.Packages.LocalPath, "solo", "0.1.0", "artifact")
	assert.FileExists(t, installed)

	want := []string{
		"-1:" + string(StateEnvironmentResolving),
		"-1:" + string(StateEnvironmentReady),
		"-1:" + string(StateBuilding),
		"-1:" + string(StateBuildSucceeded),
		"-1:" + string(StateInstalling),
		"-1:" + string(StateInstalled),
	}
	assert.Equal(t, want, reporter.transitions)
}

func TestLocalBuild_NoInstall(t *testing.T) {
	dir := writePackage(t, soloManifest)
	opts, _, builder, reporter := testOptions(t, dir)

	proc, err := Create("local", opts)
	require.NoError(t, err)

	err = proc.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, builder.callCount())
	assert.NoDirExists(t, filepath.Join(opts.Config.Packages.LocalPath, "solo"))
	assert.NotContains(t, reporter.transitions, "-1:"+string(StateInstalling))
}

func TestLocalBuild_VariantsInstallIntoSubdirs(t *testing.T) {
	dir := writePackage(t, threeVariantManifest)
	opts, _, builder, _ := testOptions(t, dir)

	proc, err := Create("local", opts)
	require.NoError(t, err)

	err = proc.Build(context.Background(), BuildOptions{Install: true})
	require.NoError(t, err)

	assert.Equal(t, 3, builder.callCount())
	root := filepath.Join(opts.Config.Packages.LocalPath, "mytool", "1.2.3")
	for _, sub := range []string{"variant-0", "variant-1", "variant-2"} {
		assert.FileExists(t, filepath.Join(root, sub, "artifact"))
	}
}

func TestLocalBuild_ContinuesPastFailedVariant(t *testing.T) {
	dir := writePackage(t, threeVariantManifest)
	opts, _, builder, _ := testOptions(t, dir)
	builder.failOn = map[int]bool{1: true}

	proc, err := Create("local", opts)
	require.NoError(t, err)

	err = proc.Build(context.Background(), BuildOptions{Install: true})

	var buildErr *BuildFailedError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, 1, buildErr.Variant)
	assert.Equal(t, 3, builder.callCount(), "remaining variants still attempted after a failure")

	// Surviving variants are installed despite the failure.
	root := filepath.Join(opts.Config.Packages.LocalPath, "mytool", "1.2.3")
	assert.FileExists(t, filepath.Join(root, "variant-0", "artifact"))
	assert.FileExists(t, filepath.Join(root, "variant-2", "artifact"))
	assert.NoDirExists(t, filepath.Join(root, "variant-1"))
}

func TestLocalBuild_RequestedSubset(t *testing.T) {
	dir := writePackage(t, threeVariantManifest)
	opts, resolver, builder, reporter := testOptions(t, dir)

	proc, err := Create("local", opts)
	require.NoError(t, err)

	err = proc.Build(context.Background(), BuildOptions{Variants: []int{0, 2}})
	require.NoError(t, err)

	assert.Equal(t, 2, resolver.callCount(), "exactly one resolve per selected variant")
	assert.Equal(t, 2, builder.callCount())
	assert.Equal(t, []string{"Skipping 2/3..."}, reporter.skips)
}

func TestLocalBuild_ExplicitInstallPathOverride(t *testing.T) {
	dir := writePackage(t, soloManifest)
	opts, _, _, _ := testOptions(t, dir)
	override := t.TempDir()

	proc, err := Create("local", opts)
	require.NoError(t, err)

	err = proc.Build(context.Background(), BuildOptions{Install: true, InstallPath: override})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(override, "solo", "0.1.0", "artifact"))
	assert.NoDirExists(t, filepath.Join(opts.Config.Packages.LocalPath, "solo"))
}

func TestLocalRelease_Unsupported(t *testing.T) {
	dir := writePackage(t, soloManifest)
	opts, _, _, _ := testOptions(t, dir)

	proc, err := Create("local", opts)
	require.NoError(t, err)

	err = proc.Release(context.Background(), ReleaseOptions{})
	var unsupported *ReleaseUnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "local", unsupported.ProcessType)
}

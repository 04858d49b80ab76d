package buildsys

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/manifest"
	"git.home.luguber.info/inful/pkgforge/internal/solver"
)

func TestRegistry(t *testing.T) {
	assert.Contains(t, Names(), "command")

	_, err := Create("no-such-backend", &config.Config{})
	assert.Error(t, err)

	cfg := &config.Config{}
	require.NoError(t, cfg.ApplyDefaults())
	sys, err := Create("command", cfg)
	require.NoError(t, err)
	assert.Equal(t, "command", sys.Name())
}

func TestCommandBuildSystem_Success(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	work := t.TempDir()
	buildPath := filepath.Join(work, "build")
	require.NoError(t, os.MkdirAll(buildPath, 0o755))

	script := filepath.Join(work, "build.sh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\necho built > \"$PKGFORGE_BUILD_PATH/out.txt\"\n"), 0o755))

	sys := &CommandBuildSystem{command: "./build.sh"}
	result, err := sys.Build(context.Background(), BuildRequest{
		Context:    &solver.ResolvedContext{Status: solver.StatusSolved},
		Package:    &manifest.Package{Name: "p"},
		Variant:    manifest.Variant{Index: 0},
		WorkingDir: work,
		BuildPath:  buildPath,
	})
	require.NoError(t, err)
	assert.Equal(t, buildPath, result.ArtifactPath)
	assert.FileExists(t, filepath.Join(buildPath, "out.txt"))
}

func TestCommandBuildSystem_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	work := t.TempDir()
	script := filepath.Join(work, "build.sh")
	require.NoError(t, os.WriteFile(script,
		[]byte("#!/bin/sh\necho boom >&2\nexit 3\n"), 0o755))

	sys := &CommandBuildSystem{command: "./build.sh"}
	_, err := sys.Build(context.Background(), BuildRequest{
		Context:    &solver.ResolvedContext{Status: solver.StatusSolved},
		Package:    &manifest.Package{Name: "p"},
		Variant:    manifest.Variant{Index: 0},
		WorkingDir: work,
		BuildPath:  work,
	})

	var cmdErr *CommandFailedError
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, cmdErr.Output, "boom")
}

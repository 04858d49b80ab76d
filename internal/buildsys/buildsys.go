// Package buildsys defines the pluggable build-system backend contract.
// Backends are opaque to the orchestration core: they receive a resolved
// context and a variant, produce artifacts under the variant build path, and
// report failure with their own error types.
package buildsys

import (
	"context"
	"fmt"
	"sort"

	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/manifest"
	"git.home.luguber.info/inful/pkgforge/internal/solver"
)

// BuildRequest carries everything a backend needs for one variant build.
type BuildRequest struct {
	// Context is the resolved (solved) build environment.
	Context *solver.ResolvedContext

	// Package is the package being built; Variant the variant within it.
	Package *manifest.Package
	Variant manifest.Variant

	// WorkingDir is the package source directory.
	WorkingDir string

	// BuildPath is the variant's build directory; all output goes here.
	BuildPath string

	// InstallPath is where the payload will be installed, exported to the
	// build so it can embed install locations. Empty when not installing.
	InstallPath string

	// Clean indicates prior output was discarded before this build.
	Clean bool
}

// BuildResult describes a completed variant build.
type BuildResult struct {
	// ArtifactPath is the directory holding the build's installable payload.
	ArtifactPath string
}

// BuildSystem builds one variant inside a resolved environment.
type BuildSystem interface {
	Name() string
	Build(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// Factory constructs a backend from process-wide configuration.
type Factory func(cfg *config.Config) (BuildSystem, error)

var registry = map[string]Factory{}

// Register adds a named backend factory. Called from implementation init().
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Create instantiates the named backend.
func Create(name string, cfg *config.Config) (BuildSystem, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown build system %q (available: %v)", name, Names())
	}
	return factory(cfg)
}

// Names returns the registered backend names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

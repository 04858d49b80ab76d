// Package process is the orchestration core of the build/release pipeline.
// A BuildProcess iterates over the variants of a package, creates the correct
// build environment for each, builds the variant with a build-system backend,
// and possibly installs or releases the result under version control.
//
// Concrete orchestrators are registered by name and instantiated through
// Create; they share their mechanics through Helper by composition.
package process

import (
	"context"

	"git.home.luguber.info/inful/pkgforge/internal/buildsys"
	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/metrics"
	"git.home.luguber.info/inful/pkgforge/internal/releasestore"
	"git.home.luguber.info/inful/pkgforge/internal/solver"
	"git.home.luguber.info/inful/pkgforge/internal/vcs"
)

// BuildProcess builds and possibly releases a package.
type BuildProcess interface {
	// Build constructs the build environment for each selected variant,
	// invokes the build-system backend, and optionally installs the output.
	Build(ctx context.Context, opts BuildOptions) error

	// Release builds each selected variant into the release repository, then
	// records the release with the VCS backend and runs release hooks.
	Release(ctx context.Context, opts ReleaseOptions) error
}

// BuildOptions parameterize one Build invocation.
type BuildOptions struct {
	// InstallPath overrides the local package repository as install root.
	InstallPath string

	// Clean discards prior build output for each processed variant before
	// rebuilding. False builds incrementally over previous output.
	Clean bool

	// Install copies build output into the install root.
	Install bool

	// Variants selects variant indices to build; empty selects all.
	Variants []int
}

// ReleaseOptions parameterize one Release invocation.
type ReleaseOptions struct {
	// Message is recorded with the release. Empty derives a default from the
	// package name and version.
	Message string

	// Variants selects variant indices to release; empty selects all.
	Variants []int
}

// Options are the construction inputs shared by all process types.
type Options struct {
	// WorkingDir is the directory containing the package to build.
	WorkingDir string

	// BuildSystem is the backend used to build each variant.
	BuildSystem buildsys.BuildSystem

	// VCS is the version control backend used for releasing. Optional; its
	// root must equal WorkingDir when present.
	VCS vcs.ReleaseVCS

	// Resolver produces build environments. Defaults to the filesystem path
	// resolver when nil.
	Resolver solver.Resolver

	// Config is the process-wide configuration. Required.
	Config *config.Config

	// AllowStaleRelease disables the ensure-latest release check. The default
	// (false) refuses to release when a newer version is already released.
	AllowStaleRelease bool

	// Verbose selects the console reporter over the silent one when Reporter
	// is nil.
	Verbose bool

	// Reporter overrides the verbosity-derived reporter. Optional.
	Reporter Reporter

	// Recorder receives metrics. Defaults to the no-op recorder.
	Recorder metrics.Recorder

	// ReleaseStore, when set, receives a record of each completed release.
	ReleaseStore releasestore.Store
}

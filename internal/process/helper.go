package process

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/pkgforge/internal/buildpath"
	"git.home.luguber.info/inful/pkgforge/internal/buildsys"
	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/hooks"
	"git.home.luguber.info/inful/pkgforge/internal/logfields"
	"git.home.luguber.info/inful/pkgforge/internal/manifest"
	"git.home.luguber.info/inful/pkgforge/internal/metrics"
	"git.home.luguber.info/inful/pkgforge/internal/releasestore"
	"git.home.luguber.info/inful/pkgforge/internal/repository"
	"git.home.luguber.info/inful/pkgforge/internal/solver"
	"git.home.luguber.info/inful/pkgforge/internal/util/sets"
	"git.home.luguber.info/inful/pkgforge/internal/vcs"
)

// Helper implements the orchestration mechanics shared by concrete build
// processes: variant selection and traversal, build environment construction,
// install path computation, and progress reporting. Concrete orchestrators
// hold a Helper by composition and implement policy on top of it.
type Helper struct {
	workingDir  string
	buildSystem buildsys.BuildSystem
	vcs         vcs.ReleaseVCS
	resolver    solver.Resolver
	cfg         *config.Config
	allowStale  bool

	pkg       *manifest.Package
	hooks     []hooks.Hook
	buildPath *buildpath.Manager
	reporter  Reporter
	recorder  metrics.Recorder
	store     releasestore.Store
}

// NewHelper validates construction inputs and loads the package state shared
// by every operation: the descriptor, its release hooks, and the build path.
func NewHelper(opts Options) (*Helper, error) {
	if opts.VCS != nil && opts.VCS.Path() != opts.WorkingDir {
		return nil, &ConfigMismatchError{
			WorkingDir: opts.WorkingDir,
			VCSPath:    opts.VCS.Path(),
		}
	}
	if opts.Config == nil {
		return nil, fmt.Errorf("build process requires configuration")
	}
	if opts.BuildSystem == nil {
		return nil, fmt.Errorf("build process requires a build system backend")
	}

	pkg, err := manifest.Load(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	hookList, err := hooks.Create(pkg.Config.ReleaseHooks, opts.WorkingDir, opts.Config)
	if err != nil {
		return nil, err
	}

	buildDir := pkg.Config.BuildDirectory
	if buildDir == "" {
		buildDir = opts.Config.Build.Directory
	}

	h := &Helper{
		workingDir:  opts.WorkingDir,
		buildSystem: opts.BuildSystem,
		vcs:         opts.VCS,
		resolver:    opts.Resolver,
		cfg:         opts.Config,
		allowStale:  opts.AllowStaleRelease,
		pkg:         pkg,
		hooks:       hookList,
		buildPath:   buildpath.NewManager(opts.WorkingDir, buildDir),
		reporter:    opts.Reporter,
		recorder:    opts.Recorder,
		store:       opts.ReleaseStore,
	}
	if h.resolver == nil {
		h.resolver = solver.NewPathResolver()
	}
	if h.reporter == nil {
		h.reporter = NewReporter(opts.Verbose)
	}
	if h.recorder == nil {
		h.recorder = metrics.NoopRecorder{}
	}
	return h, nil
}

// Package returns the loaded package descriptor. Read-only.
func (h *Helper) Package() *manifest.Package { return h.pkg }

// BuildPath returns the package's build directory manager.
func (h *Helper) BuildPath() *buildpath.Manager { return h.buildPath }

// VisitPolicy decides how variant traversal reacts to a failing variant.
type VisitPolicy int

const (
	// VisitFailFast aborts the traversal on the first failed variant.
	VisitFailFast VisitPolicy = iota

	// VisitCollect attempts every selected variant and joins the failures.
	VisitCollect
)

// VisitVariants iterates the package's variants in declaration order and
// calls visit on each selected one. Requested indices are validated up front:
// any that do not exist in the package fail the whole traversal with a
// VariantNotFoundError before any variant is processed. Non-selected variants
// are reported as skipped, not failed.
func (h *Helper) VisitVariants(requested []int, policy VisitPolicy, visit func(manifest.Variant) error) error {
	if len(requested) > 0 {
		present := sets.New(h.pkg.VariantIndices()...)
		invalid := sets.New(requested...).Diff(present)
		if len(invalid) > 0 {
			return &VariantNotFoundError{Indices: sets.SortedInts(invalid)}
		}
	}

	selected := sets.New(requested...)
	var errs []error
	for _, v := range h.pkg.Variants() {
		if len(requested) > 0 && !selected.Has(v.Index) {
			h.reporter.Skip("Skipping %s...", h.NOfM(v))
			h.recorder.IncVariantOutcome("skipped")
			continue
		}
		if err := visit(v); err != nil {
			if policy == VisitFailFast {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// InstallPath returns the package's installation path under a repository root:
// <root>/<name>[/<version>], the version segment omitted for unversioned packages.
func (h *Helper) InstallPath(root string) string {
	return repository.InstallPath(root, h.pkg.Name, h.pkg.Version)
}

// BuildEnvironment resolves a variant's full requirement set against the
// search paths selected by buildType and returns the solved context along
// with its snapshot path. The context is always serialized to the snapshot
// before its status is checked: a failed resolve must stay inspectable on
// disk after the error propagates.
func (h *Helper) BuildEnvironment(ctx context.Context, v manifest.Variant, buildType BuildType) (*solver.ResolvedContext, string, error) {
	req := solver.Request{
		Requirements: v.FullRequires(),
		SearchPaths:  append(buildType.SearchPaths(h.cfg), h.pkg.Config.SearchPath...),
		Building:     true,
	}
	h.reporter.Line("Resolving build environment: %s", strings.Join(req.Requirements, " "))
	h.reporter.Transition(v.Index, StateEnvironmentResolving)

	start := time.Now()
	rctx, err := h.resolver.Resolve(ctx, req)
	if err != nil {
		h.reporter.Transition(v.Index, StateEnvironmentFailed)
		return nil, "", fmt.Errorf("resolve build environment: %w", err)
	}

	snapshot := h.buildPath.SnapshotPath(v.Index)
	if err := rctx.Save(snapshot); err != nil {
		return nil, "", err
	}
	h.recorder.ObserveResolveDuration(time.Since(start), rctx.Status == solver.StatusSolved)

	if rctx.Status != solver.StatusSolved {
		h.reporter.Transition(v.Index, StateEnvironmentFailed)
		return nil, "", &ResolveError{Context: rctx, SnapshotPath: snapshot}
	}
	h.reporter.Transition(v.Index, StateEnvironmentReady)
	return rctx, snapshot, nil
}

// NOfM renders a variant's 1-based position over the package's variant count
// for progress output. Purely presentational: a package with no declared
// variants reports "1/1".
func (h *Helper) NOfM(v manifest.Variant) string {
	n := h.pkg.NumVariants()
	if n < 1 {
		n = 1
	}
	idx := v.Index
	if idx < 0 {
		idx = 0
	}
	return fmt.Sprintf("%d/%d", idx+1, n)
}

// buildVariant runs the full per-variant pipeline: clean (optional), resolve,
// build, and install (when installTo is non-empty).
func (h *Helper) buildVariant(ctx context.Context, v manifest.Variant, buildType BuildType, clean bool, installTo string) error {
	h.reporter.Header("Building %s (%s)...", h.NOfM(v), v.DisplayName(h.pkg))

	if clean {
		if err := h.buildPath.Clean(v.Index); err != nil {
			return err
		}
	}
	variantPath, err := h.buildPath.Create(v.Index)
	if err != nil {
		return err
	}

	rctx, _, err := h.BuildEnvironment(ctx, v, buildType)
	if err != nil {
		h.recorder.IncVariantOutcome("failed")
		return err
	}

	h.reporter.Transition(v.Index, StateBuilding)
	start := time.Now()
	result, err := h.buildSystem.Build(ctx, buildsys.BuildRequest{
		Context:     rctx,
		Package:     h.pkg,
		Variant:     v,
		WorkingDir:  h.workingDir,
		BuildPath:   variantPath,
		InstallPath: installTo,
		Clean:       clean,
	})
	h.recorder.ObserveVariantBuildDuration(time.Since(start), err == nil)
	if err != nil {
		h.reporter.Transition(v.Index, StateBuildFailed)
		h.recorder.IncVariantOutcome("failed")
		return &BuildFailedError{Variant: v.Index, Err: err}
	}
	h.reporter.Transition(v.Index, StateBuildSucceeded)

	if installTo != "" {
		h.reporter.Transition(v.Index, StateInstalling)
		dst := h.variantInstallPath(installTo, v)
		if err := buildpath.CopyTree(result.ArtifactPath, dst); err != nil {
			h.reporter.Transition(v.Index, StateInstallFailed)
			h.recorder.IncVariantOutcome("failed")
			return fmt.Errorf("install variant %d to %s: %w", v.Index, dst, err)
		}
		h.reporter.Transition(v.Index, StateInstalled)
		h.reporter.Line("Installed to %s", dst)
	}

	h.recorder.IncVariantOutcome("built")
	return nil
}

// variantInstallPath namespaces a declared variant's payload inside the
// package install path so sibling variants never overwrite each other.
func (h *Helper) variantInstallPath(root string, v manifest.Variant) string {
	if v.Index < 0 {
		return root
	}
	return filepath.Join(root, fmt.Sprintf("variant-%d", v.Index))
}

// runHooks invokes one lifecycle callback on every configured hook. Hook
// failures are reported and logged, never escalated: a broken notifier must
// not fail a release that already happened.
func (h *Helper) runHooks(ctx context.Context, stage string, ev hooks.Event) {
	for _, hook := range h.hooks {
		var err error
		switch stage {
		case "pre_build":
			err = hook.PreBuild(ctx, ev)
		case "pre_release":
			err = hook.PreRelease(ctx, ev)
		case "post_release":
			err = hook.PostRelease(ctx, ev)
		}
		if err != nil {
			slog.Warn("Release hook failed",
				logfields.Hook(hook.Name()),
				logfields.Stage(stage),
				logfields.Error(err))
			h.reporter.Line("Hook %s failed at %s: %v", hook.Name(), stage, err)
		}
	}
}

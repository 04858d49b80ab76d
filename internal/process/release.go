package process

import (
	"context"
	"fmt"
	"log/slog"

	goversion "github.com/hashicorp/go-version"

	"git.home.luguber.info/inful/pkgforge/internal/hooks"
	"git.home.luguber.info/inful/pkgforge/internal/logfields"
	"git.home.luguber.info/inful/pkgforge/internal/manifest"
	"git.home.luguber.info/inful/pkgforge/internal/releasestore"
	"git.home.luguber.info/inful/pkgforge/internal/repository"
	"git.home.luguber.info/inful/pkgforge/internal/vcs"
)

func init() {
	RegisterProcessType("release", func(h *Helper) BuildProcess {
		return &ReleaseProcess{h: h}
	})
}

// ReleaseProcess builds a package into the release repository and records the
// release under version control.
//
// Failure policy: the first failed variant aborts the invocation. A release
// is recorded only when every selected variant built and installed, so the
// release repository never carries a partially released version with a
// recorded revision.
type ReleaseProcess struct {
	h *Helper
}

// Build builds each selected variant against non-local package repositories
// only, without recording anything. Install defaults to the local repository,
// matching the build contract shared by all process types.
func (p *ReleaseProcess) Build(ctx context.Context, opts BuildOptions) error {
	installTo := ""
	if opts.Install {
		root := opts.InstallPath
		if root == "" {
			root = p.h.cfg.Packages.LocalPath
		}
		installTo = p.h.InstallPath(root)
	}

	err := p.h.VisitVariants(opts.Variants, VisitFailFast, func(v manifest.Variant) error {
		return p.h.buildVariant(ctx, v, BuildTypeCentral, opts.Clean, installTo)
	})
	if err != nil {
		p.h.recorder.IncBuildOutcome("failed")
		return err
	}
	p.h.recorder.IncBuildOutcome("success")
	return nil
}

// Release performs the full release sequence: ensure-latest check, clean
// central builds into the release repository, VCS record (and tag when the
// backend supports it), release history, and the release hook lifecycle.
func (p *ReleaseProcess) Release(ctx context.Context, opts ReleaseOptions) error {
	if p.h.vcs == nil {
		p.h.recorder.IncReleaseOutcome("failed")
		return fmt.Errorf("release process requires a version control backend")
	}

	pkg := p.h.pkg
	if err := p.checkNotStale(); err != nil {
		p.h.recorder.IncReleaseOutcome("stale")
		return err
	}

	message := opts.Message
	if message == "" {
		message = fmt.Sprintf("Released %s", pkg.QualifiedName())
	}

	p.h.reporter.Header("Releasing %s...", pkg.QualifiedName())
	slog.Info("Starting release",
		logfields.Package(pkg.Name),
		logfields.Version(pkg.Version),
		logfields.Process("release"))

	p.h.runHooks(ctx, "pre_build", hooks.Event{Package: pkg, Message: message})

	// Releases always build clean so the recorded payload cannot carry
	// leftovers from previous local builds.
	releaseRoot := p.h.InstallPath(p.h.cfg.Packages.ReleasePath)
	var released []int
	err := p.h.VisitVariants(opts.Variants, VisitFailFast, func(v manifest.Variant) error {
		if err := p.h.buildVariant(ctx, v, BuildTypeCentral, true, releaseRoot); err != nil {
			return err
		}
		released = append(released, v.Index)
		return nil
	})
	if err != nil {
		p.h.recorder.IncReleaseOutcome("failed")
		return err
	}

	p.h.runHooks(ctx, "pre_release", hooks.Event{Package: pkg, Message: message})

	for _, idx := range released {
		p.h.reporter.Transition(idx, StateReleasing)
	}
	revision, err := p.h.vcs.Record(ctx, message)
	if err != nil {
		for _, idx := range released {
			p.h.reporter.Transition(idx, StateReleaseFailed)
		}
		p.h.recorder.IncReleaseOutcome("failed")
		return err
	}
	if tagger, ok := p.h.vcs.(vcs.Tagger); ok {
		if err := tagger.Tag(ctx, pkg.QualifiedName(), message); err != nil {
			slog.Warn("Release tag failed", logfields.Error(err))
			p.h.reporter.Line("Tagging failed: %v", err)
		}
	}
	for _, idx := range released {
		p.h.reporter.Transition(idx, StateReleased)
	}

	p.recordHistory(ctx, revision, message, released)
	p.h.runHooks(ctx, "post_release", hooks.Event{Package: pkg, Message: message, Revision: revision})

	p.h.reporter.Line("Released %s (revision %s)", pkg.QualifiedName(), revision)
	slog.Info("Release complete",
		logfields.Package(pkg.Name),
		logfields.Version(pkg.Version),
		logfields.Revision(revision))
	p.h.recorder.IncReleaseOutcome("released")
	return nil
}

// checkNotStale enforces the ensure-latest policy: a release is refused when
// the release repository already holds a higher version of the package. Runs
// before any artifact is written.
func (p *ReleaseProcess) checkNotStale() error {
	if p.h.allowStale || p.h.pkg.Version == "" {
		return nil
	}
	latest, ok, err := repository.LatestVersion(p.h.cfg.Packages.ReleasePath, p.h.pkg.Name)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	candidate, err := goversion.NewVersion(p.h.pkg.Version)
	if err != nil {
		return err
	}
	if latest.GreaterThan(candidate) {
		return &StaleReleaseError{
			Package:   p.h.pkg.Name,
			Candidate: p.h.pkg.Version,
			Latest:    latest.Original(),
		}
	}
	return nil
}

func (p *ReleaseProcess) recordHistory(ctx context.Context, revision, message string, variants []int) {
	if p.h.store == nil {
		return
	}
	err := p.h.store.Append(ctx, releasestore.Record{
		Package:  p.h.pkg.Name,
		Version:  p.h.pkg.Version,
		Revision: revision,
		Message:  message,
		Variants: variants,
	})
	if err != nil {
		slog.Warn("Failed to record release history", logfields.Error(err))
	}
}

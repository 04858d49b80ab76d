package process

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/pkgforge/internal/logfields"
	"git.home.luguber.info/inful/pkgforge/internal/manifest"
)

func init() {
	RegisterProcessType("local", func(h *Helper) BuildProcess {
		return &LocalProcess{h: h}
	})
}

// LocalProcess builds (and optionally installs) a package into the local
// package repository.
//
// Failure policy: every selected variant is attempted even when an earlier
// one fails; the failures are joined and reported after the traversal. A
// developer iterating on a multi-variant package sees all broken variants in
// one run.
type LocalProcess struct {
	h *Helper
}

// Build builds each selected variant in the developer sandbox configuration
// (local and remote package repositories visible to the resolver).
func (p *LocalProcess) Build(ctx context.Context, opts BuildOptions) error {
	installTo := ""
	if opts.Install {
		root := opts.InstallPath
		if root == "" {
			root = p.h.cfg.Packages.LocalPath
		}
		installTo = p.h.InstallPath(root)
	}

	slog.Info("Starting local build",
		logfields.Package(p.h.pkg.Name),
		logfields.Version(p.h.pkg.Version),
		logfields.Process("local"))

	err := p.h.VisitVariants(opts.Variants, VisitCollect, func(v manifest.Variant) error {
		return p.h.buildVariant(ctx, v, BuildTypeLocal, opts.Clean, installTo)
	})
	if err != nil {
		p.h.recorder.IncBuildOutcome("failed")
		return err
	}
	p.h.recorder.IncBuildOutcome("success")
	return nil
}

// Release is not supported by the local process.
func (p *LocalProcess) Release(ctx context.Context, opts ReleaseOptions) error {
	return &ReleaseUnsupportedError{ProcessType: "local"}
}

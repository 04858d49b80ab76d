package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/pkgforge/internal/process"
	"git.home.luguber.info/inful/pkgforge/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Process  string `short:"p" help:"Build process type" default:"local" enum:"local,release"`
	Install  bool   `short:"i" help:"Install the build into the package repository"`
	Prefix   string `help:"Install to a custom repository path instead of the configured one"`
	Clean    bool   `help:"Delete the build directory before building"`
	Variants []int  `help:"Select variants to build by index (default: all)"`
	Watch    bool   `short:"w" help:"Rebuild automatically when package sources change"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	a, err := assemble(root, false)
	if err != nil {
		return err
	}
	defer a.close()

	proc, err := process.Create(b.Process, a.opts)
	if err != nil {
		return err
	}

	opts := process.BuildOptions{
		InstallPath: b.Prefix,
		Clean:       b.Clean,
		Install:     b.Install,
		Variants:    b.Variants,
	}

	ctx := context.Background()
	if !b.Watch {
		return proc.Build(ctx, opts)
	}
	return b.watchLoop(ctx, a, proc, opts)
}

// watchLoop runs an initial build, then rebuilds on source changes until
// interrupted. Build failures do not stop the loop; the next change retries.
func (b *BuildCmd) watchLoop(ctx context.Context, a *assembled, proc process.BuildProcess, opts process.BuildOptions) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := proc.Build(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
	}

	buildDir := filepath.Join(a.opts.WorkingDir, a.cfg.Build.Directory)
	w, err := watch.NewWatcher(a.opts.WorkingDir, buildDir, func(ctx context.Context) error {
		return proc.Build(ctx, opts)
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

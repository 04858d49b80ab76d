package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pkgforge/internal/buildsys"
	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/metrics"
	"git.home.luguber.info/inful/pkgforge/internal/process"
	"git.home.luguber.info/inful/pkgforge/internal/releasestore"
	"git.home.luguber.info/inful/pkgforge/internal/vcs"
)

// Global holds state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"pkgforge.yaml"`
	Dir     string           `short:"C" help:"Package working directory" default:"."`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the package in the current directory"`
	Release ReleaseCmd `cmd:"" help:"Build and release the package to the release repository"`
	Env     EnvCmd     `cmd:"" help:"Print the resolved build environment for a variant"`
	Types   TypesCmd   `cmd:"" help:"List available build process types and build systems"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// assembled bundles the collaborators a process invocation needs, so each
// command shares one construction path.
type assembled struct {
	cfg   *config.Config
	opts  process.Options
	store releasestore.Store
}

func (a *assembled) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			slog.Warn("Failed to close release history store", "error", err)
		}
	}
}

// assemble loads configuration and wires the process collaborators. The VCS
// backend is attached only when requested: build invocations in a plain
// directory must not require a git repository.
func assemble(root *CLI, withVCS bool) (*assembled, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	backend, err := buildsys.Create(cfg.Build.System, cfg)
	if err != nil {
		return nil, err
	}

	workingDir, err := absWorkingDir(root.Dir)
	if err != nil {
		return nil, err
	}

	a := &assembled{
		cfg: cfg,
		opts: process.Options{
			WorkingDir:  workingDir,
			BuildSystem: backend,
			Config:      cfg,
			Verbose:     root.Verbose,
		},
	}

	if withVCS {
		gitVCS, err := vcs.NewGitVCS(workingDir)
		if err != nil {
			return nil, err
		}
		a.opts.VCS = gitVCS
	}

	if cfg.Metrics.Enabled {
		a.opts.Recorder = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
	}

	if cfg.Release.HistoryDB != "" {
		store, err := releasestore.NewSQLiteStore(cfg.Release.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("open release history store: %w", err)
		}
		a.store = store
		a.opts.ReleaseStore = store
	}

	return a, nil
}

func absWorkingDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

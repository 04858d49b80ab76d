// Package config loads and validates the process-wide pkgforge configuration.
// Configuration is resolved once at startup and threaded through construction;
// nothing re-reads it implicitly afterward.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Packages PackagesConfig `yaml:"packages"`
	Build    BuildConfig    `yaml:"build"`
	Release  ReleaseConfig  `yaml:"release"`
	Hooks    HooksConfig    `yaml:"hooks"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// PackagesConfig describes the package repositories visible to the resolver
// and the roots that builds install into.
type PackagesConfig struct {
	// LocalPath is the developer-local package repository (install target for
	// local builds, and the path excluded from central builds).
	LocalPath string `yaml:"local_path"`

	// ReleasePath is the release package repository (install target for releases).
	ReleasePath string `yaml:"release_path"`

	// SearchPath is the ordered list of repositories the resolver consults.
	// If empty it defaults to [LocalPath, ReleasePath].
	SearchPath []string `yaml:"search_path,omitempty"`
}

// BuildConfig controls how variants are built.
type BuildConfig struct {
	// Directory is the build directory name created under the package working
	// directory. Shared by all variants; each variant builds in a subpath.
	Directory string `yaml:"directory"`

	// System selects the build-system backend by registered name.
	System string `yaml:"system"`

	// Command is the build command run by the "command" build system.
	Command string `yaml:"command"`
}

// ReleaseConfig controls release bookkeeping.
type ReleaseConfig struct {
	// HistoryDB is the sqlite file release records are appended to.
	// Empty disables release history.
	HistoryDB string `yaml:"history_db,omitempty"`
}

// HooksConfig carries settings for release hook implementations.
type HooksConfig struct {
	NATS NATSHookConfig `yaml:"nats"`
}

// NATSHookConfig configures the NATS release hook.
type NATSHookConfig struct {
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig enables Prometheus metrics collection.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from the given path, applies environment variable
// overrides and defaults. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields with their defaults and expands home-relative paths.
func (c *Config) ApplyDefaults() error {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if c.Packages.LocalPath == "" {
		c.Packages.LocalPath = filepath.Join(home, "packages")
	}
	if c.Packages.ReleasePath == "" {
		c.Packages.ReleasePath = filepath.Join(home, "release", "packages")
	}
	if len(c.Packages.SearchPath) == 0 {
		c.Packages.SearchPath = []string{c.Packages.LocalPath, c.Packages.ReleasePath}
	}
	if c.Build.Directory == "" {
		c.Build.Directory = "build"
	}
	if c.Build.System == "" {
		c.Build.System = "command"
	}
	if c.Build.Command == "" {
		c.Build.Command = "./build.sh"
	}
	if c.Hooks.NATS.Subject == "" {
		c.Hooks.NATS.Subject = "pkgforge.release"
	}
	return nil
}

// SearchPaths returns the package repositories consulted for local builds.
func (c *Config) SearchPaths() []string {
	return append([]string(nil), c.Packages.SearchPath...)
}

// NonLocalSearchPaths returns the search path with the local repository
// removed. Central (release) builds resolve against these only, so a release
// can never capture a package that exists solely in a developer's local repo.
func (c *Config) NonLocalSearchPaths() []string {
	out := make([]string, 0, len(c.Packages.SearchPath))
	for _, p := range c.Packages.SearchPath {
		if p != c.Packages.LocalPath {
			out = append(out, p)
		}
	}
	return out
}

// Package hooks provides the release hook contract and its registry. Hooks
// observe the release lifecycle at pre-build, pre-release and post-release
// points; hook failures are reported but never fail the release itself.
package hooks

import (
	"context"
	"fmt"
	"sort"

	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/manifest"
)

// Event carries the release state visible to a hook callback.
type Event struct {
	// Package is the package being released. Never nil.
	Package *manifest.Package

	// Variant is the variant concerned, or nil for process-level events.
	Variant *manifest.Variant

	// Message is the release message, if any.
	Message string

	// Revision is the recorded revision id. Set for post-release events only.
	Revision string
}

// Hook receives release lifecycle callbacks.
type Hook interface {
	Name() string
	PreBuild(ctx context.Context, ev Event) error
	PreRelease(ctx context.Context, ev Event) error
	PostRelease(ctx context.Context, ev Event) error
}

// Factory constructs a hook for one build process lifetime.
type Factory func(workingDir string, cfg *config.Config) (Hook, error)

var registry = map[string]Factory{}

// Register adds a named hook factory. Called from implementation init().
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Names returns the registered hook names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Create constructs the hooks named in a package's configuration, in order.
// An unregistered name fails construction; a package configuring no hooks
// yields an empty, usable list.
func Create(names []string, workingDir string, cfg *config.Config) ([]Hook, error) {
	out := make([]Hook, 0, len(names))
	for _, name := range names {
		factory, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("unknown release hook %q (available: %v)", name, Names())
		}
		h, err := factory(workingDir, cfg)
		if err != nil {
			return nil, fmt.Errorf("create release hook %q: %w", name, err)
		}
		out = append(out, h)
	}
	return out, nil
}

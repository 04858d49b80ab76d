// Package solver defines the resolver collaborator contract: given a set of
// requirement strings and package search paths, produce a resolved build
// environment. The solving algorithm itself lives behind the Resolver
// interface; this package owns only the request/context data model, the
// snapshot format, and a simple filesystem-backed resolver.
package solver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Status is the outcome of a resolve.
type Status string

const (
	// StatusSolved indicates the resolve succeeded and the context is usable.
	StatusSolved Status = "solved"

	// StatusFailed indicates one or more requirements could not be satisfied.
	StatusFailed Status = "failed"

	// StatusAborted indicates the resolve was cancelled before completion.
	StatusAborted Status = "aborted"
)

// Request describes one resolve: an ordered requirement list, the package
// repositories to search, and whether this is a build-time resolve.
type Request struct {
	Requirements []string `yaml:"requirements"`
	SearchPaths  []string `yaml:"search_paths"`
	Building     bool     `yaml:"building"`
}

// ResolvedPackage is one package selected into a resolved context.
type ResolvedPackage struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
	Root    string `yaml:"root"`
}

// ResolvedContext is an environment descriptor produced by a Resolver. It is
// serializable to a snapshot file so a failed resolve stays inspectable.
type ResolvedContext struct {
	Request   Request           `yaml:"request"`
	Status    Status            `yaml:"status"`
	Resolved  []ResolvedPackage `yaml:"resolved,omitempty"`
	Failure   string            `yaml:"failure,omitempty"`
	CreatedAt time.Time         `yaml:"created_at"`
}

// Resolver produces a resolved context for a request. Implementations apply
// their own timeouts; cancellation arrives through ctx and must surface as a
// context with StatusAborted or as an error, never be masked.
type Resolver interface {
	Resolve(ctx context.Context, req Request) (*ResolvedContext, error)
}

// Save serializes the context to path, creating parent directories as needed.
// Callers persist the snapshot before checking Status so failed resolves are
// debuggable after the fact.
func (c *ResolvedContext) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serialize resolved context: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// LoadContext reads a context snapshot written by Save.
func LoadContext(path string) (*ResolvedContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	c := &ResolvedContext{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return c, nil
}

// Environ returns the environment variables activating this context, sorted
// by key: the resolved package roots joined onto PKGFORGE_RESOLVED_PATH plus a
// per-package root variable.
func (c *ResolvedContext) Environ() []string {
	vars := map[string]string{}
	roots := make([]string, 0, len(c.Resolved))
	for _, p := range c.Resolved {
		roots = append(roots, p.Root)
		vars["PKGFORGE_ROOT_"+envKey(p.Name)] = p.Root
		if p.Version != "" {
			vars["PKGFORGE_VERSION_"+envKey(p.Name)] = p.Version
		}
	}
	vars["PKGFORGE_RESOLVED_PATH"] = joinPathList(roots)

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+vars[k])
	}
	return out
}

func joinPathList(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += string(os.PathListSeparator)
		}
		out += p
	}
	return out
}

func envKey(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

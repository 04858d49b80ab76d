// Package buildpath manages the build directory of one package working
// directory: <workingDir>/<buildDirectory>, with one subpath per variant so
// concurrent or repeated variant builds never collide on snapshot files.
package buildpath

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pkgforge/internal/logfields"
)

// SnapshotFile is the resolved-context snapshot filename written per variant.
const SnapshotFile = "build.rxt"

// Manager owns the build directory of a single package for its lifetime.
type Manager struct {
	workingDir string
	buildDir   string
}

// NewManager creates a manager for <workingDir>/<buildDirectory>.
func NewManager(workingDir, buildDirectory string) *Manager {
	return &Manager{
		workingDir: workingDir,
		buildDir:   filepath.Join(workingDir, buildDirectory),
	}
}

// Root returns the shared build directory for all variants of the package.
func (m *Manager) Root() string { return m.buildDir }

// VariantPath returns the build subpath for a variant index. The implicit
// sole variant (index < 0) builds directly in the root.
func (m *Manager) VariantPath(index int) string {
	if index < 0 {
		return m.buildDir
	}
	return filepath.Join(m.buildDir, fmt.Sprintf("variant-%d", index))
}

// SnapshotPath returns the resolved-context snapshot path for a variant.
func (m *Manager) SnapshotPath(index int) string {
	return filepath.Join(m.VariantPath(index), SnapshotFile)
}

// Create ensures a variant's build subpath exists.
func (m *Manager) Create(index int) (string, error) {
	p := m.VariantPath(index)
	if err := os.MkdirAll(p, 0o750); err != nil {
		return "", fmt.Errorf("create build directory %s: %w", p, err)
	}
	return p, nil
}

// Clean discards a variant's previous build output. Used for clean builds;
// incremental builds rebuild over whatever is present.
func (m *Manager) Clean(index int) error {
	p := m.VariantPath(index)
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("clean build directory %s: %w", p, err)
	}
	slog.Debug("Cleaned build directory", logfields.Path(p))
	return nil
}

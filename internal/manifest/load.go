package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pkgforge/internal/logfields"
)

// Load reads and validates the package descriptor from a working directory.
func Load(workingDir string) (*Package, error) {
	path := filepath.Join(workingDir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &InvalidManifestError{
				Path:   path,
				Reason: "no package descriptor found",
				Err:    err,
			}
		}
		return nil, fmt.Errorf("read package descriptor %s: %w", path, err)
	}

	pkg := &Package{}
	if err := yaml.Unmarshal(data, pkg); err != nil {
		return nil, &InvalidManifestError{Path: path, Reason: "malformed yaml", Err: err}
	}
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("Loaded package descriptor",
		logfields.Package(pkg.Name),
		logfields.Version(pkg.Version),
		slog.Int("variants", pkg.NumVariants()),
		logfields.Path(path))
	return pkg, nil
}

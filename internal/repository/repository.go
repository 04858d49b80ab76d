// Package repository models the on-disk package repository layout used for
// installs and releases: <root>/<name>/<version>, with the version segment
// omitted for unversioned packages.
package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// InstallPath returns the installation path for a package under root.
// Deterministic: the same inputs always produce the same path.
func InstallPath(root, name, version string) string {
	p := filepath.Join(root, name)
	if version != "" {
		p = filepath.Join(p, version)
	}
	return p
}

// LatestVersion returns the highest released version of a package under root.
// The second return is false when the package has no versioned releases.
// Non-version directory entries are ignored rather than treated as errors, so
// a stray file in a repository cannot break release checks.
func LatestVersion(root, name string) (*goversion.Version, bool, error) {
	entries, err := os.ReadDir(filepath.Join(root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scan package repository %s: %w", root, err)
	}

	var latest *goversion.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, err := goversion.NewVersion(e.Name())
		if err != nil {
			continue
		}
		if latest == nil || v.GreaterThan(latest) {
			latest = v
		}
	}
	return latest, latest != nil, nil
}

// Versions returns all released versions of a package under root, ascending.
func Versions(root, name string) ([]*goversion.Version, error) {
	entries, err := os.ReadDir(filepath.Join(root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan package repository %s: %w", root, err)
	}

	var out []*goversion.Version
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if v, err := goversion.NewVersion(e.Name()); err == nil {
			out = append(out, v)
		}
	}
	sort.Sort(goversion.Collection(out))
	return out, nil
}

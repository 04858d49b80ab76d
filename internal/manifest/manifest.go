// Package manifest defines the developer package descriptor and its variants.
// A Package is loaded once from a working directory and is read-only afterward;
// it is the single source of truth for variants and per-package configuration
// for the lifetime of the build process that loaded it.
package manifest

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// ManifestFile is the descriptor filename expected in a package working directory.
const ManifestFile = "package.yaml"

// Package is an immutable package descriptor.
type Package struct {
	// Name is the package name. Required.
	Name string `yaml:"name"`

	// Version is the package version. Optional; an unversioned package installs
	// without a version path segment.
	Version string `yaml:"version,omitempty"`

	Description string `yaml:"description,omitempty"`

	// Requires are runtime requirements shared by every variant.
	Requires []string `yaml:"requires,omitempty"`

	// BuildRequires are build-time requirements shared by every variant.
	BuildRequires []string `yaml:"build_requires,omitempty"`

	// PrivateBuildRequires are build-time requirements not inherited by
	// dependent packages.
	PrivateBuildRequires []string `yaml:"private_build_requires,omitempty"`

	// VariantRequires declares the package's variants: each entry is the extra
	// requirement list distinguishing one variant. Empty means the package has
	// a single implicit variant.
	VariantRequires [][]string `yaml:"variants,omitempty"`

	// Config carries per-package build configuration.
	Config PackageConfig `yaml:"config,omitempty"`
}

// PackageConfig is per-package build/release configuration.
type PackageConfig struct {
	// BuildDirectory overrides the configured build directory name.
	BuildDirectory string `yaml:"build_directory,omitempty"`

	// ReleaseHooks names the release hooks to run for this package.
	ReleaseHooks []string `yaml:"release_hooks,omitempty"`

	// SearchPath appends extra package repositories to the configured search
	// path when resolving this package's build environments.
	SearchPath []string `yaml:"search_path,omitempty"`
}

// Variant is one concrete dependency combination of a package.
type Variant struct {
	// Index is the variant's 0-based position in the package's variant list,
	// or -1 for the implicit sole variant of a package that declares none.
	Index int

	// Requires are the variant's runtime requirements (package requirements
	// plus the variant's own).
	Requires []string

	// BuildRequires are the package's build-time requirements.
	BuildRequires []string

	// PrivateBuildRequires are the package's private build-time requirements.
	PrivateBuildRequires []string
}

// FullRequires returns the complete requirement set used to resolve the
// variant's build environment: runtime, build-time and private build-time
// requirements, in that order.
func (v Variant) FullRequires() []string {
	out := make([]string, 0, len(v.Requires)+len(v.BuildRequires)+len(v.PrivateBuildRequires))
	out = append(out, v.Requires...)
	out = append(out, v.BuildRequires...)
	out = append(out, v.PrivateBuildRequires...)
	return out
}

// DisplayName renders the variant for progress output, e.g. "pkg-1.2.3[0]".
func (v Variant) DisplayName(p *Package) string {
	name := p.QualifiedName()
	if v.Index >= 0 {
		return fmt.Sprintf("%s[%d]", name, v.Index)
	}
	return name
}

// NumVariants returns the number of declared variants. A package with no
// declared variants reports 0, even though it still builds once.
func (p *Package) NumVariants() int { return len(p.VariantRequires) }

// Variants returns the package's variants in declaration order. A package
// declaring none yields a single implicit variant with index -1.
func (p *Package) Variants() []Variant {
	if len(p.VariantRequires) == 0 {
		return []Variant{{
			Index:                -1,
			Requires:             append([]string(nil), p.Requires...),
			BuildRequires:        append([]string(nil), p.BuildRequires...),
			PrivateBuildRequires: append([]string(nil), p.PrivateBuildRequires...),
		}}
	}

	out := make([]Variant, 0, len(p.VariantRequires))
	for i, extra := range p.VariantRequires {
		requires := make([]string, 0, len(p.Requires)+len(extra))
		requires = append(requires, p.Requires...)
		requires = append(requires, extra...)
		out = append(out, Variant{
			Index:                i,
			Requires:             requires,
			BuildRequires:        append([]string(nil), p.BuildRequires...),
			PrivateBuildRequires: append([]string(nil), p.PrivateBuildRequires...),
		})
	}
	return out
}

// VariantIndices returns the declared variant indices in order.
func (p *Package) VariantIndices() []int {
	out := make([]int, len(p.VariantRequires))
	for i := range p.VariantRequires {
		out[i] = i
	}
	return out
}

// QualifiedName returns "name" or "name-version" for a versioned package.
func (p *Package) QualifiedName() string {
	if p.Version == "" {
		return p.Name
	}
	return p.Name + "-" + p.Version
}

// Validate checks structural invariants of the descriptor.
func (p *Package) Validate() error {
	if p.Name == "" {
		return &InvalidManifestError{Reason: "package name is required"}
	}
	if p.Version != "" {
		if _, err := goversion.NewVersion(p.Version); err != nil {
			return &InvalidManifestError{
				Reason: fmt.Sprintf("invalid version %q", p.Version),
				Err:    err,
			}
		}
	}
	for i, extra := range p.VariantRequires {
		if len(extra) == 0 {
			return &InvalidManifestError{
				Reason: fmt.Sprintf("variant %d declares no requirements", i),
			}
		}
	}
	return nil
}

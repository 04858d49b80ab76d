package process

import (
	"fmt"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/pkgforge/internal/solver"
)

// Typed process errors enabling structured classification without string
// parsing upstream. Each kind maps to one failure in the orchestration
// contract; all are recoverable by the caller.

// ConfigMismatchError indicates the process was constructed with collaborators
// that disagree about the working directory.
type ConfigMismatchError struct {
	WorkingDir string
	VCSPath    string
}

func (e *ConfigMismatchError) Error() string {
	return fmt.Sprintf("build process instantiated with a mismatched VCS instance: vcs root %s, working directory %s",
		e.VCSPath, e.WorkingDir)
}

// UnknownProcessTypeError indicates the factory was given an unregistered name.
type UnknownProcessTypeError struct {
	Name      string
	Available []string
}

func (e *UnknownProcessTypeError) Error() string {
	return fmt.Sprintf("unknown build process %q (available: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// VariantNotFoundError indicates requested variant indices absent from the
// package. Indices are sorted and deduplicated; no variant is processed when
// this is returned.
type VariantNotFoundError struct {
	Indices []int
}

func (e *VariantNotFoundError) Error() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = strconv.Itoa(idx)
	}
	return fmt.Sprintf("the package does not contain the variants: %s", strings.Join(parts, ", "))
}

// ResolveError indicates a build environment resolve that did not reach
// solved status. The unsolved context is attached for diagnosis; its snapshot
// is already on disk when this error is raised.
type ResolveError struct {
	Context      *solver.ResolvedContext
	SnapshotPath string
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("failed to resolve build environment: %s", e.Context.Status)
	if e.Context.Failure != "" {
		msg += ": " + e.Context.Failure
	}
	return msg
}

// BuildFailedError wraps a build-system backend failure for one variant.
type BuildFailedError struct {
	Variant int
	Err     error
}

func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("variant %d build failed: %v", e.Variant, e.Err)
}

func (e *BuildFailedError) Unwrap() error { return e.Err }

// StaleReleaseError indicates ensure-latest rejected a release because a
// newer version is already released. Raised before any artifact is written.
type StaleReleaseError struct {
	Package   string
	Candidate string
	Latest    string
}

func (e *StaleReleaseError) Error() string {
	return fmt.Sprintf("cannot release %s-%s: version %s is already released",
		e.Package, e.Candidate, e.Latest)
}

// ReleaseUnsupportedError indicates the selected process type cannot release.
type ReleaseUnsupportedError struct {
	ProcessType string
}

func (e *ReleaseUnsupportedError) Error() string {
	return fmt.Sprintf("build process %q does not support releasing; use the release process", e.ProcessType)
}

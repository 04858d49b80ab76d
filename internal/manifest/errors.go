package manifest

import "fmt"

// InvalidManifestError indicates a missing or structurally invalid package descriptor.
type InvalidManifestError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidManifestError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid package descriptor %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid package descriptor: %s", e.Reason)
}

func (e *InvalidManifestError) Unwrap() error { return e.Err }

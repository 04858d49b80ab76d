// Package vcs defines the version-control backend contract used to record
// releases, and a go-git implementation.
package vcs

import "context"

// ReleaseVCS records releases in a version-controlled package working
// directory. Path must equal the build process's working directory; the
// mismatch check happens at process construction.
type ReleaseVCS interface {
	// Path returns the repository root this backend operates on.
	Path() string

	// Record commits the current working directory state with the release
	// message and returns the resulting revision id.
	Record(ctx context.Context, message string) (revision string, err error)
}

// Tagger is implemented by backends that can additionally tag the recorded
// revision with a release name.
type Tagger interface {
	Tag(ctx context.Context, name, message string) error
}

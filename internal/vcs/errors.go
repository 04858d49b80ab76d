package vcs

import "fmt"

// Typed vcs errors enabling structured classification without string parsing upstream.

type NotARepositoryError struct {
	Path string
	Err  error
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("%s is not a version-controlled directory: %v", e.Path, e.Err)
}
func (e *NotARepositoryError) Unwrap() error { return e.Err }

type RecordError struct {
	Path string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record release in %s: %v", e.Path, e.Err)
}
func (e *RecordError) Unwrap() error { return e.Err }

type TagExistsError struct {
	Tag string
	Err error
}

func (e *TagExistsError) Error() string {
	return fmt.Sprintf("release tag %s already exists: %v", e.Tag, e.Err)
}
func (e *TagExistsError) Unwrap() error { return e.Err }

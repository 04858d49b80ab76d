// Package metrics provides observability hooks for build and release
// operations. Components receive a Recorder through dependency injection;
// NoopRecorder is the default so metrics stay optional with zero overhead.
package metrics

import "time"

// Recorder defines observability hooks for resolve, build and release
// operations. Implementations may forward to Prometheus etc.
type Recorder interface {
	ObserveResolveDuration(d time.Duration, solved bool)
	ObserveVariantBuildDuration(d time.Duration, success bool)
	IncVariantOutcome(outcome string) // outcome: built|failed|skipped
	IncBuildOutcome(outcome string)   // outcome: success|failed
	IncReleaseOutcome(outcome string) // outcome: released|failed|stale
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(time.Duration, bool)      {}
func (NoopRecorder) ObserveVariantBuildDuration(time.Duration, bool) {}
func (NoopRecorder) IncVariantOutcome(string)                        {}
func (NoopRecorder) IncBuildOutcome(string)                          {}
func (NoopRecorder) IncReleaseOutcome(string)                        {}

package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestNoopRecorderImplementsRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveResolveDuration(time.Second, true)
	r.ObserveVariantBuildDuration(time.Second, false)
	r.IncVariantOutcome("built")
	r.IncBuildOutcome("success")
	r.IncReleaseOutcome("released")
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveResolveDuration(250*time.Millisecond, true)
	r.ObserveVariantBuildDuration(time.Second, true)
	r.IncVariantOutcome("built")
	r.IncBuildOutcome("success")
	r.IncReleaseOutcome("stale")

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.NotEmpty(t, families)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["pkgforge_resolve_duration_seconds"])
	assert.True(t, names["pkgforge_variant_outcomes_total"])
	assert.True(t, names["pkgforge_release_outcomes_total"])
}

package metrics

import (
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	resolveDuration *prom.HistogramVec
	buildDuration   *prom.HistogramVec
	variantOutcome  *prom.CounterVec
	buildOutcome    *prom.CounterVec
	releaseOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		resolveDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pkgforge",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of build environment resolves",
			Buckets:   prom.DefBuckets,
		}, []string{"solved"}),
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "pkgforge",
			Name:      "variant_build_duration_seconds",
			Help:      "Duration of individual variant builds",
			Buckets:   prom.DefBuckets,
		}, []string{"success"}),
		variantOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pkgforge",
			Name:      "variant_outcomes_total",
			Help:      "Variant outcomes by terminal state",
		}, []string{"outcome"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pkgforge",
			Name:      "build_outcomes_total",
			Help:      "Build invocation outcomes",
		}, []string{"outcome"}),
		releaseOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pkgforge",
			Name:      "release_outcomes_total",
			Help:      "Release invocation outcomes",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.resolveDuration, pr.buildDuration, pr.variantOutcome,
		pr.buildOutcome, pr.releaseOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveResolveDuration(d time.Duration, solved bool) {
	p.resolveDuration.WithLabelValues(strconv.FormatBool(solved)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveVariantBuildDuration(d time.Duration, success bool) {
	p.buildDuration.WithLabelValues(strconv.FormatBool(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncVariantOutcome(outcome string) {
	p.variantOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncReleaseOutcome(outcome string) {
	p.releaseOutcome.WithLabelValues(outcome).Inc()
}

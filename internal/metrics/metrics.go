// Package metrics records registry and materialization activity as
// Prometheus collectors. A nil *Observer is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/specialistvlad/colengine/internal/colid"
)

// Registration outcomes used as the "outcome" label.
const (
	OutcomeRegistered = "registered"
	OutcomeReplaced   = "replaced"
	OutcomeCycle      = "cycle"
	OutcomeInvalid    = "invalid"
)

// Observer owns the engine's collectors.
type Observer struct {
	materializations *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	evalErrors       *prometheus.CounterVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	registrations    *prometheus.CounterVec
	removals         prometheus.Counter
	versionBumps     prometheus.Counter
}

// New creates an Observer whose collectors are registered on reg. Passing
// prometheus.DefaultRegisterer exposes them on the process-wide registry.
func New(reg prometheus.Registerer) *Observer {
	f := promauto.With(reg)
	return &Observer{
		materializations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "colengine_materializations_total",
			Help: "Dense column materializations by column and strategy",
		}, []string{"column", "strategy"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "colengine_materialization_duration_seconds",
			Help:    "Dense column materialization latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"strategy"}),
		evalErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "colengine_evaluation_errors_total",
			Help: "Failed column evaluations by column and error type",
		}, []string{"column", "error_type"}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "colengine_dense_cache_hits_total",
			Help: "Single-value reads served from the dense array cache",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "colengine_dense_cache_misses_total",
			Help: "Single-value reads that had to materialize a dense array",
		}),
		registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "colengine_registrations_total",
			Help: "Column registrations by outcome",
		}, []string{"outcome"}),
		removals: f.NewCounter(prometheus.CounterOpts{
			Name: "colengine_removals_total",
			Help: "Columns removed from the registry",
		}),
		versionBumps: f.NewCounter(prometheus.CounterOpts{
			Name: "colengine_version_bumps_total",
			Help: "Individual spec version increments",
		}),
	}
}

// Materialized records one dense materialization.
func (o *Observer) Materialized(id colid.ID, strategy string, elapsed time.Duration) {
	if o == nil {
		return
	}
	o.materializations.WithLabelValues(id.Key(), strategy).Inc()
	o.duration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

// EvaluationFailed records a failed Value or Dense call.
func (o *Observer) EvaluationFailed(id colid.ID, errorType string) {
	if o == nil {
		return
	}
	o.evalErrors.WithLabelValues(id.Key(), errorType).Inc()
}

// CacheHit records a dense cache hit.
func (o *Observer) CacheHit() {
	if o == nil {
		return
	}
	o.cacheHits.Inc()
}

// CacheMiss records a dense cache miss.
func (o *Observer) CacheMiss() {
	if o == nil {
		return
	}
	o.cacheMisses.Inc()
}

// Registered records the outcome of a RegisterColumn call.
func (o *Observer) Registered(outcome string) {
	if o == nil {
		return
	}
	o.registrations.WithLabelValues(outcome).Inc()
}

// Removed records a successful RemoveColumn call.
func (o *Observer) Removed() {
	if o == nil {
		return
	}
	o.removals.Inc()
}

// VersionsBumped records n version increments.
func (o *Observer) VersionsBumped(n int) {
	if o == nil || n <= 0 {
		return
	}
	o.versionBumps.Add(float64(n))
}

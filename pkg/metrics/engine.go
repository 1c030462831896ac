package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records scenario evaluations and VIN decode activity.
type EngineMetrics struct {
	evaluations    *prometheus.CounterVec
	weightRequired *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	vinCache       *prometheus.CounterVec
	vinDecode      *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scenario_evaluations_total",
		Help: "Scenario evaluations by jurisdiction and detected scenario type.",
	}, []string{"jurisdiction", "scenario"})
	weightRequired := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scenario_weight_required_total",
		Help: "Evaluations that could not price weight fees without a manual bracket.",
	}, []string{"jurisdiction"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scenario_evaluation_duration_seconds",
		Help:    "Duration of scenario evaluations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"jurisdiction"})
	vinCache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vin_cache_lookups_total",
		Help: "VIN decode cache lookups by result.",
	}, []string{"result"})
	vinDecode := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vin_decode_requests_total",
		Help: "Upstream VIN decode requests by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(evaluations, weightRequired, duration, vinCache, vinDecode)
	return &EngineMetrics{
		evaluations:    evaluations,
		weightRequired: weightRequired,
		duration:       duration,
		vinCache:       vinCache,
		vinDecode:      vinDecode,
	}
}

// ObserveEvaluation records one completed evaluation.
func (m *EngineMetrics) ObserveEvaluation(jurisdiction, scenarioType string, weightRequired bool, elapsed time.Duration) {
	if m == nil || m.evaluations == nil {
		return
	}
	jurisdiction = normalizeLabel(jurisdiction)
	m.evaluations.WithLabelValues(jurisdiction, normalizeLabel(scenarioType)).Inc()
	m.duration.WithLabelValues(jurisdiction).Observe(elapsed.Seconds())
	if weightRequired {
		m.weightRequired.WithLabelValues(jurisdiction).Inc()
	}
}

// IncVINCacheHit counts a cache hit.
func (m *EngineMetrics) IncVINCacheHit() {
	if m == nil || m.vinCache == nil {
		return
	}
	m.vinCache.WithLabelValues("hit").Inc()
}

// IncVINCacheMiss counts a cache miss.
func (m *EngineMetrics) IncVINCacheMiss() {
	if m == nil || m.vinCache == nil {
		return
	}
	m.vinCache.WithLabelValues("miss").Inc()
}

// IncVINDecode counts an upstream decode with the given outcome.
func (m *EngineMetrics) IncVINDecode(outcome string) {
	if m == nil || m.vinDecode == nil {
		return
	}
	m.vinDecode.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

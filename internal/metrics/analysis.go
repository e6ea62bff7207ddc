package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Analysis outcomes used as label values.
const (
	OutcomeSuccess          = "success"
	OutcomeInvalid          = "invalid"
	OutcomeUpstreamRejected = "upstream_rejected"
	OutcomeError            = "error"
)

// AnalysisMetrics tracks /analyze outcomes and upstream latency.
type AnalysisMetrics struct {
	AnalysesTotal    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
}

// NewAnalysisMetrics creates and registers analysis metrics on the given registry.
func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "requests_total",
			Help:      "Total number of emotion analyses by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "upstream_duration_seconds",
			Help:      "Latency of emotion scoring calls to the upstream provider.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider", "result"}),
	}

	reg.MustRegister(m.AnalysesTotal, m.UpstreamDuration)
	return m
}

// ObserveOutcome counts one finished analysis. Nil receivers are ignored.
func (m *AnalysisMetrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records the latency of one upstream call.
func (m *AnalysisMetrics) ObserveUpstream(provider, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamDuration.WithLabelValues(provider, result).Observe(elapsed.Seconds())
}

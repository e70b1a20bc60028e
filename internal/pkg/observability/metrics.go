package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report lifecycle and dashboard aggregation paths.
type Metrics struct {
	ReportsSubmitted prometheus.Counter
	Transitions      *prometheus.CounterVec // labels: from, to, outcome={ok,conflict,denied}
	AIScoresApplied  prometheus.Counter

	AggregationDuration prometheus.Histogram
	DashboardPolls      *prometheus.CounterVec // labels: outcome={ok,error}
	SessionsActive      prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsSubmitted,
		m.Transitions,
		m.AIScoresApplied,
		m.AggregationDuration,
		m.DashboardPolls,
		m.SessionsActive,
	)
	return m
}

// NewUnregisteredMetrics creates metrics without touching the default
// registry. Tests use this to avoid duplicate registration panics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crisiswatch",
			Name:      "reports_submitted_total",
			Help:      "Total reports accepted through the submission surface.",
		}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crisiswatch",
			Name:      "report_transitions_total",
			Help:      "Total report status transition attempts.",
		}, []string{"from", "to", "outcome"}),
		AIScoresApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crisiswatch",
			Name:      "ai_scores_applied_total",
			Help:      "Total AI severity scores applied to reports.",
		}),
		AggregationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crisiswatch",
			Name:      "aggregation_duration_seconds",
			Help:      "Duration of a dashboard snapshot build, store read included.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		DashboardPolls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crisiswatch",
			Name:      "dashboard_polls_total",
			Help:      "Total dashboard snapshot fetches by polling sessions.",
		}, []string{"outcome"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crisiswatch",
			Name:      "dashboard_sessions_active",
			Help:      "Number of polling sessions currently running.",
		}),
	}
}

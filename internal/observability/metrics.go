package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	ActiveSessions        prometheus.Gauge
	SessionEvents         *prometheus.CounterVec
	Turns                 *prometheus.CounterVec
	ConcernScore          prometheus.Histogram
	ResourceNotifications prometheus.Counter
	ProviderErrors        *prometheus.CounterVec
	PersistenceFailures   *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of active conversation sessions.",
		}),
		SessionEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_events_total",
			Help:      "Session events by type.",
		}, []string{"event"}),
		Turns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Processed conversation turns by language.",
		}, []string{"language"}),
		ConcernScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "concern_score",
			Help:      "Normalized concern score per analysis.",
			Buckets:   []float64{0.5, 1.0, 1.5, 2.0, 3.0, 4.5, 6.0, 8.0},
		}),
		ResourceNotifications: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resource_notifications_total",
			Help:      "Crisis-resource notifications surfaced after the suppression gate.",
		}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Provider errors by provider and code.",
		}, []string{"provider", "code"}),
		PersistenceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Persistence write failures by operation.",
		}, []string{"op"}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

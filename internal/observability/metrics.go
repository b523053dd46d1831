// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Guess metrics
	GuessesAccepted prometheus.Counter
	GuessesRejected *prometheus.CounterVec // label: reason

	// Session metrics
	SessionsSolved    prometheus.Counter
	SessionsExhausted prometheus.Counter
	SolveAttempts     prometheus.Histogram

	// Lookup metrics
	SuggestionQueries prometheus.Counter

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec // labels: path, status

	// Live feed metrics
	LiveClients prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "stockle"
	}

	return &Metrics{
		GuessesAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "guesses_accepted_total",
			Help:      "Total number of accepted guesses",
		}),
		GuessesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "guesses_rejected_total",
			Help:      "Total number of rejected guesses by reason",
		}, []string{"reason"}),
		SessionsSolved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "sessions_solved_total",
			Help:      "Total number of sessions finished solved",
		}),
		SessionsExhausted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "sessions_exhausted_total",
			Help:      "Total number of sessions finished unsolved",
		}),
		SolveAttempts: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "solve_attempts",
			Help:      "Guesses used by solved sessions",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		}),
		SuggestionQueries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lookup",
			Name:      "suggestion_queries_total",
			Help:      "Total number of autocomplete queries served",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by path and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "status"}),
		LiveClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "clients",
			Help:      "Currently connected live-feed WebSocket clients",
		}),
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

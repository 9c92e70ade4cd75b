package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for SimulationsTotal.
const (
	OutcomeOK               = "ok"
	OutcomeInvalidRequest   = "invalid_request"
	OutcomeInputError       = "input_error"
	OutcomeComputationError = "computation_error"
)

var (
	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nzeb_simulations_total",
		Help: "Model runs by outcome",
	}, []string{"outcome", "transport"})

	SimulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nzeb_simulation_duration_seconds",
		Help:    "Time spent in the model engine per run",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})

	GeneratedEnergy = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nzeb_generated_energy_kwh",
		Help:    "Total generated energy per successful run",
		Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nzeb_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nzeb_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nzeb_websocket_connections",
		Help: "Open websocket connections",
	})
)

// ObserveSimulation records one model run.
func ObserveSimulation(transport, outcome string, elapsed time.Duration) {
	SimulationsTotal.WithLabelValues(outcome, transport).Inc()
	if outcome == OutcomeOK || outcome == OutcomeComputationError {
		SimulationDuration.Observe(elapsed.Seconds())
	}
}

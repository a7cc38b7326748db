package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contractflow"

// Transition outcomes
const (
	OutcomeApplied  = "applied"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
)

var (
	registry = prometheus.NewRegistry()

	contractsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contracts_created_total",
		Help:      "Contracts instantiated from a blueprint.",
	}, []string{"outcome"})

	statusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contract_status_transitions_total",
		Help:      "Contract status change requests by source, target and outcome.",
	}, []string{"from", "to", "outcome"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		contractsCreated,
		statusTransitions,
		httpRequestDuration,
	)
}

// Registry returns the registry all service collectors live in
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordContractCreated counts a create attempt; outcome is "applied" or "rejected"
func RecordContractCreated(outcome string) {
	contractsCreated.WithLabelValues(outcome).Inc()
}

// RecordTransition counts a status change request
func RecordTransition(from, to, outcome string) {
	statusTransitions.WithLabelValues(from, to, outcome).Inc()
}

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(latency.Seconds())
}

package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
)

const metricsNamespace = "fantasy_roster"

// Metrics counts roster mutations and backend failures on a private
// registry. It satisfies usecase.MutationObserver.
type Metrics struct {
	registry        *prometheus.Registry
	mutations       *prometheus.CounterVec
	backendFailures *prometheus.CounterVec
	circuitState    *prometheus.GaugeVec
	sessions        prometheus.GaugeFunc
}

// NewMetrics registers the service collectors. activeSessions may be nil.
func NewMetrics(activeSessions func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "roster_mutations_total",
			Help:      "Roster mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		backendFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "backend_failures_total",
			Help:      "Failed backend calls by operation.",
		}, []string{"operation"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "circuit_breaker_open",
			Help:      "1 while the named circuit breaker is not closed.",
		}, []string{"name"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.mutations,
		m.backendFailures,
		m.circuitState,
	)

	if activeSessions != nil {
		m.sessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Roster sessions currently held in memory.",
		}, func() float64 { return float64(activeSessions()) })
		m.registry.MustRegister(m.sessions)
	}
	return m
}

func (m *Metrics) RosterMutation(operation, outcome string) {
	m.mutations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) BackendFailure(operation string) {
	m.backendFailures.WithLabelValues(operation).Inc()
}

// ObserveCircuit has the resilience.StateChangeFunc signature so it can be
// chained from a breaker's state hook.
func (m *Metrics) ObserveCircuit(name string, _, to resilience.CircuitState) {
	open := 0.0
	if to != resilience.CircuitStateClosed {
		open = 1
	}
	m.circuitState.WithLabelValues(name).Set(open)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

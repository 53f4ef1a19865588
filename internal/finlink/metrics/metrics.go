// Package metrics holds the Prometheus collectors for the link flow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "finlink"

// Metrics is safe to share. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	gatewayCalls     *prometheus.CounterVec
	gatewayFallbacks *prometheus.CounterVec
	linkOutcomes     *prometheus.CounterVec
	backendUp        prometheus.Gauge
	activeSessions   prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_calls_total",
			Help:      "Link data operations by source (real, simulated) and result.",
		}, []string{"operation", "source", "result"}),
		gatewayFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_fallbacks_total",
			Help:      "Real backend failures answered from the simulation instead.",
		}, []string{"operation"}),
		linkOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_attempts_total",
			Help:      "Finished link attempts by outcome.",
		}, []string{"outcome"}),
		backendUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "backend_up",
			Help:      "1 when the last health probe reached the aggregation backend.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Signed-in dashboard sessions.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.gatewayCalls,
		m.gatewayFallbacks,
		m.linkOutcomes,
		m.backendUp,
		m.activeSessions,
	)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) GatewayCall(operation, source, result string) {
	if m == nil {
		return
	}
	m.gatewayCalls.WithLabelValues(operation, source, result).Inc()
}

func (m *Metrics) GatewayFallback(operation string) {
	if m == nil {
		return
	}
	m.gatewayFallbacks.WithLabelValues(operation).Inc()
}

func (m *Metrics) LinkOutcome(outcome string) {
	if m == nil {
		return
	}
	m.linkOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) BackendUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.backendUp.Set(1)
		return
	}
	m.backendUp.Set(0)
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

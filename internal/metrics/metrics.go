// Package metrics exposes storefront counters in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	ordersPlaced    prometheus.Counter
	revenue         prometheus.Counter
	cartOperations  *prometheus.CounterVec
	insightRequests *prometheus.CounterVec
	publishFailures prometheus.Counter
}

// New registers the storefront collectors plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "orders_placed_total",
			Help:      "Orders created through checkout.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "order_revenue_total",
			Help:      "Sum of totalPrice over placed orders.",
		}),
		cartOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"operation"}),
		insightRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "insight_requests_total",
			Help:      "Generative insight calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Name:      "event_publish_failures_total",
			Help:      "Order events that could not be published.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ordersPlaced,
		m.revenue,
		m.cartOperations,
		m.insightRequests,
		m.publishFailures,
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// OrderPlaced counts one order and its total.
func (m *Metrics) OrderPlaced(total float64) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
	if total > 0 {
		m.revenue.Add(total)
	}
}

// CartOperation counts one cart mutation.
func (m *Metrics) CartOperation(op string) {
	if m == nil {
		return
	}
	m.cartOperations.WithLabelValues(op).Inc()
}

// InsightRequest counts one insight call. ok is false when a fallback was served.
func (m *Metrics) InsightRequest(op string, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "fallback"
	}
	m.insightRequests.WithLabelValues(op, outcome).Inc()
}

// PublishFailed counts one event that was dropped.
func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

// Package monitoring exposes operational counters for the ordering service.
// Collectors are registered on a private registry so tests can create
// monitors freely without duplicate-registration panics.
package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor collects service metrics and serves them over HTTP.
type Monitor struct {
	registry  *prometheus.Registry
	startTime time.Time

	mu      sync.RWMutex
	extra   map[string]interface{}

	ordersPlaced      prometheus.Counter
	orderTransitions  *prometheus.CounterVec
	paymentsProcessed prometheus.Counter
	refundsProcessed  prometheus.Counter
	revenueTotal      prometheus.Counter
	serviceRequests   *prometheus.CounterVec
	recommendations   *prometheus.CounterVec
}

// NewMonitor creates a monitoring instance with all collectors registered.
func NewMonitor() *Monitor {
	registry := prometheus.NewRegistry()

	m := &Monitor{
		registry:  registry,
		startTime: time.Now(),
		extra:     make(map[string]interface{}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tableside_orders_placed_total",
			Help: "Orders committed from customer carts",
		}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tableside_order_transitions_total",
			Help: "Order status transitions applied",
		}, []string{"status"}),
		paymentsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tableside_payments_total",
			Help: "Orders marked as paid",
		}),
		refundsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tableside_refunds_total",
			Help: "Orders cancelled or refunded",
		}),
		revenueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tableside_revenue_total",
			Help: "Running sum of paid order amounts",
		}),
		serviceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tableside_service_requests_total",
			Help: "Service requests raised by type",
		}, []string{"type"}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tableside_recommendations_total",
			Help: "Recommendation calls by outcome",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.ordersPlaced,
		m.orderTransitions,
		m.paymentsProcessed,
		m.refundsProcessed,
		m.revenueTotal,
		m.serviceRequests,
		m.recommendations,
	)
	return m
}

// Handler returns the HTTP handler serving the Prometheus exposition format.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OrderPlaced records a committed order.
func (m *Monitor) OrderPlaced() {
	m.ordersPlaced.Inc()
}

// OrderTransition records a status change applied to an order.
func (m *Monitor) OrderTransition(status string) {
	m.orderTransitions.WithLabelValues(status).Inc()
}

// PaymentProcessed records a payment and its amount.
func (m *Monitor) PaymentProcessed(amount float64) {
	m.paymentsProcessed.Inc()
	m.revenueTotal.Add(amount)
}

// RefundProcessed records a cancellation or refund.
func (m *Monitor) RefundProcessed() {
	m.refundsProcessed.Inc()
}

// ServiceRequested records a raised service request.
func (m *Monitor) ServiceRequested(kind string) {
	m.serviceRequests.WithLabelValues(kind).Inc()
}

// RecommendationServed records the outcome of a recommendation call,
// "ok", "fallback", or "stale".
func (m *Monitor) RecommendationServed(outcome string) {
	m.recommendations.WithLabelValues(outcome).Inc()
}

// RecordMetric records an ad-hoc metric value for the status endpoint.
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extra[name] = value
}

// GetMetrics returns a snapshot of ad-hoc metrics plus system metrics.
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	metrics := make(map[string]interface{}, len(m.extra)+1)
	for k, v := range m.extra {
		metrics[k] = v
	}
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()
	return metrics
}

package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the cafe's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ordersCreated     prometheus.Counter
	orderValue        prometheus.Histogram
	collectionWrites  *prometheus.CounterVec
	lowStockItems     prometheus.Gauge
	assistantRequests *prometheus.CounterVec
	assistantLatency  prometheus.Histogram
}

// NewMetrics creates and registers all collectors
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cafe_orders_created_total",
			Help: "Number of orders placed",
		}),
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cafe_order_value_dollars",
			Help:    "Order totals in dollars",
			Buckets: prometheus.LinearBuckets(5, 5, 10),
		}),
		collectionWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cafe_collection_writes_total",
			Help: "Whole-document rewrites per collection",
		}, []string{"collection"}),
		lowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cafe_low_stock_items",
			Help: "Inventory items at or below their reorder level",
		}),
		assistantRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cafe_assistant_requests_total",
			Help: "Assistant requests by outcome",
		}, []string{"outcome"}),
		assistantLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cafe_assistant_request_duration_seconds",
			Help:    "Time spent waiting on the chat provider",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}

	registry.MustRegister(
		m.ordersCreated,
		m.orderValue,
		m.collectionWrites,
		m.lowStockItems,
		m.assistantRequests,
		m.assistantLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOrder records a placed order
func (m *Metrics) RecordOrder(total float64) {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
	m.orderValue.Observe(total)
}

// RecordWrite records a rewrite of the named collection
func (m *Metrics) RecordWrite(collection string) {
	if m == nil {
		return
	}
	m.collectionWrites.WithLabelValues(collection).Inc()
}

// SetLowStock records the current number of low-stock items
func (m *Metrics) SetLowStock(count int) {
	if m == nil {
		return
	}
	m.lowStockItems.Set(float64(count))
}

// ObserveAssistant records an assistant request outcome. A zero duration
// means no provider call was made.
func (m *Metrics) ObserveAssistant(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.assistantRequests.WithLabelValues(outcome).Inc()
	if d > 0 {
		m.assistantLatency.Observe(d.Seconds())
	}
}

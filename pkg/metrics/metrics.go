package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the service's prometheus metrics. HTTP metrics are fed
// by the middleware, payment metrics by the payment service.
type Collector struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	PaymentPreparesTotal *prometheus.CounterVec
	PaymentConfirmsTotal *prometheus.CounterVec
	GatewayCallDuration  prometheus.Histogram
}

var globalCollector *Collector

// NewCollector registers and returns the metric set.
func NewCollector() *Collector {
	return &Collector{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		PaymentPreparesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_prepares_total",
				Help: "Payment preparation attempts by outcome",
			},
			[]string{"outcome"},
		),
		PaymentConfirmsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_confirms_total",
				Help: "Payment confirmation attempts by outcome",
			},
			[]string{"outcome"},
		),
		GatewayCallDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "payment_gateway_call_duration_seconds",
				Help:    "Latency of gateway confirmation calls",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// GetGlobalCollector lazily initializes the process-wide collector.
func GetGlobalCollector() *Collector {
	if globalCollector == nil {
		globalCollector = NewCollector()
	}
	return globalCollector
}

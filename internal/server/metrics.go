package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "trampcalc"

// Metrics holds the server's Prometheus collectors. Each instance has its
// own registry, so several servers (or tests) can coexist.
type Metrics struct {
	registry        *prometheus.Registry
	activeRequests  prometheus.Gauge
	requestsTotal   prometheus.Counter
	responses       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	calculations    *prometheus.CounterVec
	handler         http.Handler
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_requests",
			Help:      "Number of requests being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Total number of requests received.",
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "responses_total",
			Help:      "Responses by path and status code.",
		}, []string{"path", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency by path.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"path"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "calculations_total",
			Help:      "Calculations by function, algorithm and outcome.",
		}, []string{"function", "algorithm", "outcome"}),
	}
	m.registry.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		m.responses,
		m.requestDuration,
		m.calculations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
	return m
}

func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveResponse records the status code and latency of one request.
func (m *Metrics) ObserveResponse(path string, code int, d time.Duration) {
	m.responses.WithLabelValues(path, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(path).Observe(d.Seconds())
}

// ObserveCalculation records the outcome of one calculation: "ok",
// "refused", "timeout" or "error".
func (m *Metrics) ObserveCalculation(function, algorithm, outcome string) {
	m.calculations.WithLabelValues(function, algorithm, outcome).Inc()
}

// WritePrometheus serves the registry in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

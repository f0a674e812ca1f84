// Package metrics exposes the Prometheus instrumentation used by the serve
// mode.  All metrics live in a private registry so tests can construct
// isolated instances without hitting the global default registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes every metric emitted by the application.
const namespace = "molscreen"

// DefaultHTTPDurationBuckets covers the expected latency range of screening
// requests, from sub-millisecond single-molecule calls to multi-second
// batch jobs.
var DefaultHTTPDurationBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Metrics holds all application metrics.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Screening layer
	ScreeningsTotal    *prometheus.CounterVec
	ParseFailuresTotal prometheus.Counter
	BatchRowsTotal     *prometheus.CounterVec

	// QSAR layer
	PredictionsTotal  prometheus.Counter
	PredictedLogS     prometheus.Histogram
	ModelLoaded       prometheus.Gauge
	ModelReloadsTotal *prometheus.CounterVec
}

// New constructs a Metrics instance backed by a fresh registry with process
// and Go runtime collectors attached.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status_code"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration.",
		Buckets:   DefaultHTTPDurationBuckets,
	}, []string{"method", "path"})

	m.ScreeningsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screenings_total",
		Help:      "Molecules screened, labelled by outcome.",
	}, []string{"status"})

	m.ParseFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "smiles_parse_failures_total",
		Help:      "SMILES strings rejected by the parser.",
	})

	m.BatchRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_rows_total",
		Help:      "Batch screening rows processed, labelled by outcome.",
	}, []string{"status"})

	m.PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Solubility predictions served.",
	})

	m.PredictedLogS = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "predicted_logs",
		Help:      "Distribution of predicted logS values.",
		Buckets:   []float64{-8, -6, -5, -4, -3, -2, -1, 0, 1, 2},
	})

	m.ModelLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "model_loaded",
		Help:      "Whether a trained model is currently loaded (1=yes, 0=no).",
	})

	m.ModelReloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "model_reloads_total",
		Help:      "Model artifact reloads, labelled by outcome.",
	}, []string{"status"})

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ScreeningsTotal,
		m.ParseFailuresTotal,
		m.BatchRowsTotal,
		m.PredictionsTotal,
		m.PredictedLogS,
		m.ModelLoaded,
		m.ModelReloadsTotal,
	)

	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry exposes the underlying registry for test assertions.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records a completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveScreening records a single screening outcome.
func (m *Metrics) ObserveScreening(err error) {
	if err != nil {
		m.ScreeningsTotal.WithLabelValues("error").Inc()
		return
	}
	m.ScreeningsTotal.WithLabelValues("ok").Inc()
}

// ObservePrediction records a served solubility prediction.
func (m *Metrics) ObservePrediction(logS float64) {
	m.PredictionsTotal.Inc()
	m.PredictedLogS.Observe(logS)
}

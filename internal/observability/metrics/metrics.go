package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes counters/histograms for the LLM, quiz, persistence and HTTP flows.
// All observers are nil-safe so components can run without metrics.
type Metrics struct {
	llmRequests        *prometheus.CounterVec
	llmLatency         *prometheus.HistogramVec
	quizExtractions    *prometheus.CounterVec
	persistenceFailure *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpLatency        *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Total LLM completion calls by provider and outcome",
		}, []string{"provider", "outcome"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lms",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Latency of LLM completion calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"provider"}),
		quizExtractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "quiz",
			Name:      "extractions_total",
			Help:      "Quiz extraction attempts by result",
		}, []string{"result"}),
		persistenceFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "store",
			Name:      "write_failures_total",
			Help:      "Best-effort document writes that failed and were dropped",
		}, []string{"collection"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lms",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lms",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.llmRequests,
		m.llmLatency,
		m.quizExtractions,
		m.persistenceFailure,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

func (m *Metrics) ObserveLLMRequest(provider, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.llmRequests.WithLabelValues(provider, outcome).Inc()
	m.llmLatency.WithLabelValues(provider).Observe(seconds)
}

func (m *Metrics) ObserveQuizExtraction(result string) {
	if m == nil {
		return
	}
	m.quizExtractions.WithLabelValues(result).Inc()
}

func (m *Metrics) ObservePersistenceFailure(collection string) {
	if m == nil {
		return
	}
	m.persistenceFailure.WithLabelValues(collection).Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(seconds)
}

package web

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qbank-ai/qbank/internal/llm"
	"github.com/qbank-ai/qbank/internal/questionbank"
)

// Generation outcomes recorded in qbank_generations_total.
const (
	outcomeSuccess    = "success"
	outcomeInvalid    = "invalid"
	outcomeEmpty      = "empty"
	outcomeError      = "error"
	outcomeOutOfScope = "out_of_scope"
	outcomeThrottled  = "throttled"
)

// Metrics holds the server's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generations     *prometheus.CounterVec
	genDuration     prometheus.Histogram
	tokens          *prometheus.CounterVec
	cost            prometheus.Counter
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 30, 60, 120},
			},
			[]string{"method", "endpoint"},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qbank_generations_total",
				Help: "Question-bank generations by outcome",
			},
			[]string{"outcome"},
		),
		genDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "qbank_generation_duration_seconds",
				Help:    "Latency of the model call for successful generations",
				Buckets: []float64{1, 5, 10, 20, 30, 60, 90, 120},
			},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qbank_llm_tokens_total",
				Help: "Tokens consumed by generations",
			},
			[]string{"direction"},
		),
		cost: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "qbank_llm_cost_usd_total",
				Help: "Estimated model spend; calls on unpriced models are not counted",
			},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.generations,
		m.genDuration,
		m.tokens,
		m.cost,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records request count and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// observe records the outcome of one generation attempt.
func (m *Metrics) observe(outcome string, res *questionbank.Result) {
	m.generations.WithLabelValues(outcome).Inc()
	if res == nil {
		return
	}
	m.genDuration.Observe(res.Elapsed.Seconds())
	m.tokens.WithLabelValues("input").Add(float64(res.Usage.InputTokens))
	m.tokens.WithLabelValues("output").Add(float64(res.Usage.OutputTokens))
	if usd, ok := llm.EstimateCost(res.Model, res.Usage); ok {
		m.cost.Add(usd)
	}
}

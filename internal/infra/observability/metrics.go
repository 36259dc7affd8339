package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const requestsTotalName = "hellomcp_requests_total"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	requestsTotal     *prometheus.CounterVec
	tokensUsed        *prometheus.CounterVec
	malformedRequests prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hellomcp_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: requestsTotalName,
				Help: "Total HTTP requests by route and status code.",
			},
			[]string{"route", "status"},
		),
		tokensUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hellomcp_tokens_total",
				Help: "Total whitespace tokens counted by /process.",
			},
			[]string{"type"},
		),
		malformedRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hellomcp_malformed_requests_total",
				Help: "Total request bodies rejected as malformed.",
			},
		),
	}
}

// RecordRequest records one finished HTTP request.
func (m *Metrics) RecordRequest(route string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// RecordTokens records input and output token counts.
func (m *Metrics) RecordTokens(input, output int) {
	m.tokensUsed.WithLabelValues("input").Add(float64(input))
	m.tokensUsed.WithLabelValues("output").Add(float64(output))
}

// IncrMalformed increments the malformed request counter.
func (m *Metrics) IncrMalformed() {
	m.malformedRequests.Inc()
}

// Snapshot is a point-in-time read of the counters.
type Snapshot struct {
	Requests          float64
	InputTokens       float64
	OutputTokens      float64
	MalformedRequests float64
}

// Snapshot reads the current counter values from the registry.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		InputTokens:       getCounterValue(m.tokensUsed.WithLabelValues("input")),
		OutputTokens:      getCounterValue(m.tokensUsed.WithLabelValues("output")),
		MalformedRequests: getCounterValue(m.malformedRequests),
	}

	families, err := m.Registry.Gather()
	if err != nil {
		return s
	}
	for _, mf := range families {
		if mf.GetName() != requestsTotalName {
			continue
		}
		for _, metric := range mf.GetMetric() {
			s.Requests += metric.GetCounter().GetValue()
		}
	}
	return s
}

// getCounterValue extracts the current float64 value from a counter.
func getCounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// MetricsMiddleware records duration and status per matched chi route pattern.
// Requests that match no route are grouped under "unmatched".
func MetricsMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.RecordRequest(route, status, time.Since(start))
		})
	}
}

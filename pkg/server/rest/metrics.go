package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	routeQueries    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transit",
			Name:      "http_requests_total",
			Help:      "number of http requests by route pattern, method and status",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "transit",
			Name:      "http_request_duration_seconds",
			Help:      "http request latency by route pattern and method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		routeQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transit",
			Name:      "route_queries_total",
			Help:      "number of route queries by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.routeQueries)
	return m
}

const (
	outcomeFound    = "found"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

func (m *Metrics) observeRoute(outcome string) {
	if m == nil {
		return
	}
	m.routeQueries.WithLabelValues(outcome).Inc()
}

// PromeHttpMiddleware records request count and latency labelled by the chi route pattern
// instead of the raw path.
func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				path = rctx.RoutePattern()
			}
			if path == "" {
				path = "unmatched"
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

// Package metrics holds the Prometheus collectors shared by the router and the gateways.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fallback reasons.
const (
	ReasonUnconfigured  = "unconfigured"
	ReasonUpstreamError = "upstream_error"
	ReasonEmptyResponse = "empty_response"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agrotech",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route pattern and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "agrotech",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	upstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agrotech",
		Name:      "upstream_calls_total",
		Help:      "Calls to external providers, by provider and outcome (ok|error).",
	}, []string{"provider", "outcome"})

	fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agrotech",
		Name:      "gateway_fallbacks_total",
		Help:      "Responses served from mock or canned data, by gateway and reason.",
	}, []string{"gateway", "reason"})
)

// ObserveUpstream records the outcome of one outbound provider call.
func ObserveUpstream(provider string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamCalls.WithLabelValues(provider, outcome).Inc()
}

// ObserveFallback records that a gateway served substitute data.
func ObserveFallback(gateway, reason string) {
	fallbacks.WithLabelValues(gateway, reason).Inc()
}

// Middleware records request counts and latency labelled with the chi route pattern,
// so path parameters such as {commodity} do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

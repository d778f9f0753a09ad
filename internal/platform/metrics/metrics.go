// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes the Prometheus collectors of the API.
//
// Collectors are registered once on the default registry through promauto
// and served by [Handler] on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// # HTTP Metrics

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yamdb_http_requests_total",
			Help: "Total number of HTTP requests by route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yamdb_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// # Domain Metrics

var (
	// SignupsTotal counts signup attempts by outcome (sent, conflict, mail_failed).
	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yamdb_signups_total",
			Help: "Signup attempts by outcome",
		},
		[]string{"outcome"},
	)

	// TokensTotal counts token requests by outcome (issued, invalid_code, reused_code).
	TokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yamdb_tokens_total",
			Help: "Token requests by outcome",
		},
		[]string{"outcome"},
	)

	// ReviewsCreatedTotal counts persisted reviews.
	ReviewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yamdb_reviews_created_total",
			Help: "Total number of reviews created",
		},
	)
)

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency labelled by the matched chi
// route pattern, which keeps label cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		HTTPRequestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(recorder.status)).Inc()
		HTTPRequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}

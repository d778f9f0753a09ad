// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/metrics"
)

/*
TestMiddleware_LabelsByRoutePattern verifies that ids do not leak into labels.
*/
func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(metrics.Middleware)
	router.Get("/v1/titles/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/titles/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/titles/"+id, nil))
		require.Equal(t, http.StatusTeapot, recorder.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

/*
TestHandler_ExposesDomainCounters checks the exposition endpoint.
*/
func TestHandler_ExposesDomainCounters(t *testing.T) {
	metrics.SignupsTotal.WithLabelValues("sent").Inc()

	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "yamdb_signups_total")
}

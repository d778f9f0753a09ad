// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/api"
	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/social/comment"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

type staticLoader map[int64]*sec.Actor

func (loader staticLoader) LoadActor(_ context.Context, userID int64) (*sec.Actor, error) {
	if actor, ok := loader[userID]; ok {
		return actor, nil
	}
	return nil, apperr.NotFound("User")
}

// newRouter mounts every handler without storage: the cases below are all
// decided by routing and permission middleware before a service is reached.
func newRouter(t *testing.T) (http.Handler, *sec.TokenService) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKey(key, &key.PublicKey, constants.AuthIssuer)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	cfg := &config.Config{Environment: "test", AuthRateLimit: 2, AuthRateWindow: time.Minute}
	security := api.Security{
		Verifier: tokens,
		Loader:   staticLoader{1: {ID: 1, Username: "alice", Role: sec.RoleUser}},
	}

	router := api.NewRouter(ctx, cfg, logger, security, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(nil, false),
		Categories: reference.NewHandler(nil),
		Genres:     reference.NewHandler(nil),
		Titles:     title.NewHandler(nil),
		Reviews:    review.NewHandler(nil),
		Comments:   comment.NewHandler(nil),
		Users:      account.NewHandler(nil),
	})
	return router, tokens
}

func do(handler http.Handler, method, target, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRouter_Gates verifies the mount points and their permission gates.
*/
func TestRouter_Gates(t *testing.T) {
	router, tokens := newRouter(t)

	userToken, err := tokens.GenerateAccessToken(1, "alice", string(sec.RoleUser), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		target string
		token  string
		status int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown_path", http.MethodGet, "/v1/nothing", "", http.StatusNotFound},
		{"non_numeric_title", http.MethodGet, "/v1/titles/abc", "", http.StatusNotFound},
		{"wrong_method", http.MethodPut, "/v1/titles", "", http.StatusMethodNotAllowed},
		{"bad_token", http.MethodGet, "/health", "garbage", http.StatusUnauthorized},
		{"category_write_anonymous", http.MethodPost, "/v1/categories", "", http.StatusUnauthorized},
		{"genre_write_user", http.MethodDelete, "/v1/genres/drama", userToken, http.StatusForbidden},
		{"title_write_user", http.MethodPatch, "/v1/titles/1", userToken, http.StatusForbidden},
		{"review_write_anonymous", http.MethodPost, "/v1/titles/1/reviews", "", http.StatusUnauthorized},
		{"review_non_numeric", http.MethodGet, "/v1/titles/1/reviews/x", "", http.StatusNotFound},
		{"comment_write_anonymous", http.MethodPost, "/v1/titles/1/reviews/2/comments", "", http.StatusUnauthorized},
		{"comment_non_numeric_review", http.MethodGet, "/v1/titles/1/reviews/x/comments", "", http.StatusNotFound},
		{"users_anonymous", http.MethodGet, "/v1/users", "", http.StatusUnauthorized},
		{"users_plain_user", http.MethodGet, "/v1/users", userToken, http.StatusForbidden},
		{"me_anonymous", http.MethodGet, "/v1/users/me", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(router, tt.method, tt.target, tt.token)
			assert.Equal(t, tt.status, recorder.Code)
			if tt.status >= http.StatusBadRequest {
				assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")
			}
		})
	}
}

/*
TestRouter_AuthRateLimit throttles the open auth endpoints per client.
*/
func TestRouter_AuthRateLimit(t *testing.T) {
	router, _ := newRouter(t)

	// An unknown auth path still counts against the limit.
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/v1/auth/none", "").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodGet, "/v1/auth/none", "").Code)
}

/*
TestReadiness reports degraded dependencies with 503.
*/
func TestReadiness(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	_, ready := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return nil },
	}, logger)
	recorder := httptest.NewRecorder()
	ready(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ready"`)

	_, degraded := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	}, logger)
	recorder = httptest.NewRecorder()
	degraded(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
	assert.Contains(t, recorder.Body.String(), `connection refused`)
}

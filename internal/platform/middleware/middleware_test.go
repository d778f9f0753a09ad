// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

type fakeLoader struct {
	actors map[int64]*sec.Actor
	err    error
}

func (loader *fakeLoader) LoadActor(_ context.Context, userID int64) (*sec.Actor, error) {
	if loader.err != nil {
		return nil, loader.err
	}
	actor, ok := loader.actors[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return actor, nil
}

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKey(key, &key.PublicKey, constants.AuthIssuer)
}

func echoActor() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		actor := ctxutil.GetActor(request.Context())
		if actor == nil {
			_, _ = io.WriteString(writer, "anonymous")
			return
		}
		_, _ = io.WriteString(writer, actor.Username+":"+string(actor.Role))
	})
}

func decodeCode(t *testing.T, body io.Reader) string {
	t.Helper()
	var envelope struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope.Code
}

/*
TestAuthenticate covers the anonymous, invalid and fresh-role paths.
*/
func TestAuthenticate(t *testing.T) {
	tokens := newTokenService(t)
	loader := &fakeLoader{actors: map[int64]*sec.Actor{
		7: {ID: 7, Username: "alice", Role: sec.RoleModerator},
	}}

	// The token still says "user"; the loader is the source of truth.
	valid, err := tokens.GenerateAccessToken(7, "alice", string(sec.RoleUser), time.Hour)
	require.NoError(t, err)
	orphan, err := tokens.GenerateAccessToken(99, "ghost", string(sec.RoleUser), time.Hour)
	require.NoError(t, err)

	handler := middleware.Authenticate(tokens, loader)(echoActor())

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, "anonymous"},
		{"valid_token_uses_stored_role", "Bearer " + valid, http.StatusOK, "alice:moderator"},
		{"malformed_header", "Token " + valid, http.StatusUnauthorized, ""},
		{"garbage_token", "Bearer nope", http.StatusUnauthorized, ""},
		{"deleted_user", "Bearer " + orphan, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, recorder.Body.String())
			}
		})
	}
}

/*
TestAuthenticate_LoaderFailure surfaces storage errors as 500.
*/
func TestAuthenticate_LoaderFailure(t *testing.T) {
	tokens := newTokenService(t)
	token, err := tokens.GenerateAccessToken(1, "bob", "user", time.Hour)
	require.NoError(t, err)

	handler := middleware.Authenticate(tokens, &fakeLoader{err: errors.New("db down")})(echoActor())

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

/*
TestRequirePermission distinguishes 401 from 403.
*/
func TestRequirePermission(t *testing.T) {
	user := &sec.Actor{ID: 1, Username: "u", Role: sec.RoleUser}
	admin := &sec.Actor{ID: 2, Username: "a", Role: sec.RoleAdmin}

	tests := []struct {
		name   string
		method string
		actor  *sec.Actor
		status int
		code   string
	}{
		{"anonymous_read", http.MethodGet, nil, http.StatusOK, ""},
		{"anonymous_write", http.MethodPost, nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"user_write", http.MethodPost, user, http.StatusForbidden, "FORBIDDEN"},
		{"admin_write", http.MethodDelete, admin, http.StatusOK, ""},
	}

	handler := middleware.RequirePermission(sec.CatalogWrite)(echoActor())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/", nil)
			if tt.actor != nil {
				request = request.WithContext(ctxutil.WithActor(request.Context(), tt.actor))
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeCode(t, recorder.Body))
			}
		})
	}
}

/*
TestRequestID keeps a client supplied id and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "abc-123")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "abc-123", seen)
}

/*
TestPanicRecovery converts a panic into a JSON 500.
*/
func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeCode(t, recorder.Body))
}

/*
TestRateLimit rejects requests beyond the burst for the same client.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 2)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	statuses := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5555"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		statuses = append(statuses, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, statuses)
}

/*
TestAuthRateLimit enforces the sliding window per IP.
*/
func TestAuthRateLimit(t *testing.T) {
	handler := middleware.AuthRateLimit(1, time.Minute)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	send := func(remoteAddr, spoofed string) int {
		request := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", nil)
		request.RemoteAddr = remoteAddr
		request.Header.Set(constants.HeaderXRealIP, spoofed)
		recorder := httptest.NewRecorder()
		middleware.ClientIP(nil)(handler).ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, send("1.1.1.1:1000", "9.9.9.1"))
	// A fresh X-Real-IP from an untrusted peer does not reset the window.
	assert.Equal(t, http.StatusTooManyRequests, send("1.1.1.1:1001", "9.9.9.2"))
	assert.Equal(t, http.StatusOK, send("2.2.2.2:1000", "9.9.9.1"))
}

/*
TestClientIP only believes forwarding headers sent by a trusted proxy.
*/
func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{"direct", "192.168.1.10:1234", "", "", "192.168.1.10"},
		{"untrusted_forwarded", "192.168.1.10:1234", "203.0.113.5", "198.51.100.7", "192.168.1.10"},
		{"trusted_forwarded", "10.0.0.1:1234", "203.0.113.5, 10.0.0.1", "198.51.100.7", "203.0.113.5"},
		{"trusted_real_ip", "10.0.0.1:1234", "", "198.51.100.7", "198.51.100.7"},
		{"trusted_garbage", "10.0.0.1:1234", "not-an-ip", "also bad", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := middleware.ClientIP([]string{"10.0.0.1"})(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				got = middleware.RealIP(request)
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				request.Header.Set(constants.HeaderXForwardedFor, tt.forwarded)
			}
			if tt.realIP != "" {
				request.Header.Set(constants.HeaderXRealIP, tt.realIP)
			}
			handler.ServeHTTP(httptest.NewRecorder(), request)

			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestRealIP falls back to the socket peer without the resolver.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.168.1.10:1234"
	request.Header.Set(constants.HeaderXRealIP, "198.51.100.7")
	assert.Equal(t, "192.168.1.10", middleware.RealIP(request))
}

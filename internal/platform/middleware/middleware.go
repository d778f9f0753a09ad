// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

Standard Stack:

  - Trace: RequestID generation for log correlation.
  - Log: Structured activity logging (slog).
  - Guard: Rate limiting, CORS and authentication.
  - Safe: Panic recovery to prevent server crashes.

Domain handlers only see a request that already carries its logger, request id
and (when authenticated) its [sec.Actor].
*/
package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/respond"
)

// # Request Tracing

// RequestID attaches a correlation ID to every request for log tracing.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Check if the client already provided an ID
			requestID := request.Header.Get(constants.HeaderXRequestID)

			// 2. Generate a time-sortable one if missing
			if requestID == "" {
				uuidV7, err := uuid.NewV7()
				if err != nil {
					requestID = uuid.New().String()
				} else {
					requestID = uuidV7.String()
				}
			}

			// 3. Inject into context and response headers
			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Activity Logging

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// actorSlot is filled by [Authenticate] so the access log can report the
// caller even though the actor is attached to a derived request context.
type actorSlot struct {
	userID int64
}

type actorSlotKey struct{}

// StructuredLogger logs every request status and latency.
// It also injects a request-specific logger into the context.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			startTime := time.Now()
			rid := ctxutil.GetRequestID(request.Context())

			// 1. Create a sub-logger for this specific request
			requestLogger := logger.With(
				slog.String("request_id", rid),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			// 2. Inject this logger into the context for downstream use
			slot := &actorSlot{}
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			ctx = context.WithValue(ctx, actorSlotKey{}, slot)
			wrappedWriter := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(wrappedWriter, request.WithContext(ctx))

			// 3. Final log entry after the request is finished
			logLevel := slog.LevelInfo
			if wrappedWriter.status >= 500 {
				logLevel = slog.LevelError
			} else if wrappedWriter.status >= 400 {
				logLevel = slog.LevelWarn
			}

			logAttrs := []any{
				slog.Int("status", wrappedWriter.status),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if slot.userID != 0 {
				logAttrs = append(logAttrs, slog.Int64("user_id", slot.userID))
			}

			requestLogger.Log(ctx, logLevel, "http_request_finished", logAttrs...)
		})
	}
}

func recordActor(ctx context.Context, userID int64) {
	if slot, ok := ctx.Value(actorSlotKey{}).(*actorSlot); ok {
		slot.userID = userID
	}
}

// # Rate Limiting

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit limits requests per IP using the token bucket algorithm.
// Idle clients are evicted by a background loop that stops with ctx.
func RateLimit(ctx context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		clients = make(map[string]*rateLimitClient)
	)

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				mu.Lock()
				for ip, clientInfo := range clients {
					if time.Since(clientInfo.lastSeen) > constants.RateLimitClientTTL {
						delete(clients, ip)
					}
				}
				mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			clientIP := RealIP(request)

			mu.Lock()
			clientInfo, found := clients[clientIP]
			if !found {
				clientInfo = &rateLimitClient{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				clients[clientIP] = clientInfo
			}
			clientInfo.lastSeen = time.Now()
			allowed := clientInfo.limiter.Allow()
			mu.Unlock()

			if !allowed {
				respond.Error(writer, request, apperr.RateLimited(1))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// AuthRateLimit applies a sliding-window limit per client IP to the
// unauthenticated auth endpoints, which trigger outbound email.
func AuthRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(func(request *http.Request) (string, error) {
			return RealIP(request), nil
		}),
		httprate.WithLimitHandler(func(writer http.ResponseWriter, request *http.Request) {
			respond.Error(writer, request, apperr.RateLimited(int(window.Seconds())))
		}),
	)
}

// # Reliability & Safety

// PanicRecovery recovers from panics, logs the stack trace and returns 500.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					stackTrace := make([]byte, 2048)
					length := runtime.Stack(stackTrace, false)

					reqLogger := ctxutil.GetLogger(request.Context())
					if reqLogger == slog.Default() {
						reqLogger = logger
					}
					reqLogger.ErrorContext(request.Context(), "panic_recovered",
						slog.Any("error", err),
						slog.String("stack", string(stackTrace[:length])),
					)

					respond.JSON(writer, http.StatusInternalServerError, respond.ErrorEnvelope{
						Error: "An unexpected error occurred",
						Code:  "INTERNAL_ERROR",
					})
				}
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// CORS handles Cross-Origin Resource Sharing for the configured origins.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", constants.HeaderXRequestID},
		ExposedHeaders:   []string{constants.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// # Middleware Helpers

// RealIP returns the client address resolved by [ClientIP], or the socket
// peer when that middleware did not run.
func RealIP(request *http.Request) string {
	if ip := ctxutil.GetClientIP(request.Context()); ip != "" {
		return ip
	}
	return remoteHost(request)
}

// ClientIP resolves the client address once per request. X-Forwarded-For and
// X-Real-IP are honoured only when the socket peer is one of trustedProxies,
// and only when they hold a parseable IP.
func ClientIP(trustedProxies []string) func(http.Handler) http.Handler {
	trusted := make(map[string]bool, len(trustedProxies))
	for _, proxy := range trustedProxies {
		if proxy = strings.TrimSpace(proxy); proxy != "" {
			trusted[proxy] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ip := remoteHost(request)
			if trusted[ip] {
				ip = forwardedIP(request, ip)
			}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClientIP(request.Context(), ip)))
		})
	}
}

func forwardedIP(request *http.Request, fallback string) string {
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); net.ParseIP(ip) != nil {
		return ip
	}
	return fallback
}

func remoteHost(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

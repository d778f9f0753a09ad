// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/platform/ctxkey"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// WithClientIP returns a new context carrying the resolved client address.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyClientIP, ip)
}

// GetClientIP retrieves the client address, or "" when none was resolved.
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(ctxkey.KeyClientIP).(string)
	return ip
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithActor returns a new context carrying the authenticated caller.
func WithActor(ctx context.Context, actor *sec.Actor) context.Context {
	return context.WithValue(ctx, ctxkey.KeyActor, actor)
}

// GetActor retrieves the caller from the context, or nil for anonymous requests.
func GetActor(ctx context.Context) *sec.Actor {
	actor, ok := ctx.Value(ctxkey.KeyActor).(*sec.Actor)
	if !ok {
		return nil
	}
	return actor
}

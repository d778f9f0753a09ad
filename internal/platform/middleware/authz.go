// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// ActorLoader resolves the current state of a user named by a token.
//
// Implementations return an error carrying NOT_FOUND when the account has
// been deleted since the token was issued.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID int64) (*sec.Actor, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Malformed header or invalid token: 401.
//  3. Valid token: the account is re-read through [ActorLoader] and the
//     resulting [*sec.Actor] is attached to the context. A vanished account
//     is a 401.
func Authenticate(verifier TokenVerifier, loader ActorLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// 1. Anonymous access
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Format validation
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// 3. Token verification
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// 4. Fresh identity
			actor, err := loader.LoadActor(request.Context(), claims.UserID)
			if err != nil {
				if apperr.IsCode(err, "NOT_FOUND") {
					respond.Error(writer, request, apperr.Unauthorized("User no longer exists"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			recordActor(request.Context(), actor.ID)
			ctx := ctxutil.WithActor(request.Context(), actor)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequirePermission enforces a request-level [sec.Predicate].
//
// A denied anonymous caller gets 401; a denied known caller gets 403.
func RequirePermission(allowed sec.Predicate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := ctxutil.GetActor(request.Context())

			if allowed(request.Method, actor) {
				next.ServeHTTP(writer, request)
				return
			}

			if actor == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}
			respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
		})
	}
}

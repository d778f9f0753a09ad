// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

/*
TestConstructors_StatusMapping pins every constructor to its HTTP status.
*/
func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Title"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperr.Forbidden("x"), http.StatusForbidden, "FORBIDDEN"},
		{"conflict_is_bad_request", apperr.Conflict("x"), http.StatusBadRequest, "CONFLICT"},
		{"validation", apperr.ValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"method_not_allowed", apperr.MethodNotAllowed("PUT"), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"rate_limited", apperr.RateLimited(3), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Title not found", apperr.NotFound("Title").Error())
}

/*
TestAs_TraversesWrappedChain ensures wrapped AppErrors are still discoverable.
*/
func TestAs_TraversesWrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.Conflict("dup"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.IsCode(wrapped, "CONFLICT"))
	assert.False(t, apperr.IsCode(errors.New("plain"), "CONFLICT"))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestWithCause keeps the original sentinel untouched.
*/
func TestWithCause(t *testing.T) {
	base := apperr.Conflict("dup")
	cause := errors.New("23505")

	withCause := base.WithCause(cause)

	assert.Nil(t, base.Cause)
	assert.ErrorIs(t, withCause, cause)
	assert.Equal(t, base.Message, withCause.Message)
}

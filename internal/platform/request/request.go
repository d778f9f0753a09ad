// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param parses a numeric URL parameter.

A value that is not a positive integer cannot address any row, so it is
reported as a missing resource rather than a validation failure.

Returns:
  - int64: The parsed identifier
  - error: apperr.NotFound(resource) if the parameter is not a positive integer
*/
func Int64Param(request *http.Request, name, resource string) (int64, error) {
	value, err := strconv.ParseInt(chi.URLParam(request, name), 10, 64)
	if err != nil || value <= 0 {
		return 0, apperr.NotFound(resource)
	}
	return value, nil
}

/*
RequiredActor ensures the request is authenticated and returns the caller.

Returns:
  - *sec.Actor: The authenticated caller
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredActor(request *http.Request) (*sec.Actor, error) {

	// Get the caller
	actor := ctxutil.GetActor(request.Context())

	// If the user is not authenticated, return an error
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return actor, nil
}

/*
Search returns the trimmed "search" query parameter used by list endpoints.
*/
func Search(request *http.Request) string {
	return strings.TrimSpace(request.URL.Query().Get("search"))
}

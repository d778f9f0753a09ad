// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer of one taxonomy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] serving the taxonomy collection.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePermission(sec.CatalogWrite))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)

	return router
}

/*
GET /v1/{categories|genres}.

Request:
  - search: string (Substring of the name)
  - page, limit: int

Response:
  - 200: []Term: Paginated list, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	terms, total, err := handler.service.List(request.Context(), Filter{Search: requestutil.Search(request)}, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, terms, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /v1/{categories|genres}.

Request (Body):
  - name: string (Required)
  - slug: string (Optional, derived from name)

Response:
  - 201: Term: Created term
  - 400: VALIDATION_ERROR or CONFLICT on a taken slug
  - 401/403: Admin required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Term
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

/*
DELETE /v1/{categories|genres}/{slug}.

Response:
  - 204: No Content
  - 404: NOT_FOUND
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

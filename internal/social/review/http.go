// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// IDParam is the URL parameter carrying a review id. Nested comment routes
// read it too.
const IDParam = "review_id"

// Handler implements the HTTP layer for reviews nested under a title.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] meant to be mounted at
// /titles/{title_id}/reviews.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(reviewRoute chi.Router) {
		reviewRoute.Use(middleware.RequirePermission(sec.ReviewComment))

		reviewRoute.Get("/", handler.list)
		reviewRoute.Post("/", handler.create)
		reviewRoute.Get("/{review_id:[0-9]+}", handler.get)
		reviewRoute.Put("/{review_id:[0-9]+}", handler.replace)
		reviewRoute.Patch("/{review_id:[0-9]+}", handler.update)
		reviewRoute.Delete("/{review_id:[0-9]+}", handler.delete)
	})

	return router
}

func parseTitleID(request *http.Request) (int64, error) {
	return requestutil.Int64Param(request, title.IDParam, "Title")
}

// ids extracts the title and review ids of a nested review URL.
func ids(request *http.Request) (int64, int64, error) {
	titleID, err := parseTitleID(request)
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := requestutil.Int64Param(request, IDParam, "Review")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

/*
GET /v1/titles/{title_id}/reviews.

Response:
  - 200: []Review: Paginated list, newest first
  - 404: NOT_FOUND: Unknown title
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := parseTitleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	reviews, total, err := handler.service.List(request.Context(), titleID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /v1/titles/{title_id}/reviews.

Request (Body):
  - text: string (Required)
  - score: int (1..10)

Response:
  - 201: Review
  - 400: VALIDATION_ERROR, or CONFLICT on a second review of the title
  - 401: UNAUTHORIZED
  - 404: NOT_FOUND: Unknown title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := parseTitleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), actor, titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
GET /v1/titles/{title_id}/reviews/{review_id}.
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
PUT /v1/titles/{title_id}/reviews/{review_id}.

Response:
  - 200: Review
  - 403: FORBIDDEN: Not the author
*/
func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Replace(request.Context(), actor, titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
PATCH /v1/titles/{title_id}/reviews/{review_id}.

Response:
  - 200: Review
  - 403: FORBIDDEN: Not the author
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Update(request.Context(), actor, titleID, reviewID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /v1/titles/{title_id}/reviews/{review_id}.

Response:
  - 204: No Content
  - 403: FORBIDDEN: Neither the author nor a moderator
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actor, titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

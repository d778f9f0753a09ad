// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// IDParam is the URL parameter carrying a comment id.
const IDParam = "comment_id"

// Handler implements the HTTP layer for comments nested under a review.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] meant to be mounted at
// /titles/{title_id}/reviews/{review_id}/comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(commentRoute chi.Router) {
		commentRoute.Use(middleware.RequirePermission(sec.ReviewComment))

		commentRoute.Get("/", handler.list)
		commentRoute.Post("/", handler.create)
		commentRoute.Get("/{comment_id:[0-9]+}", handler.get)
		commentRoute.Put("/{comment_id:[0-9]+}", handler.replace)
		commentRoute.Patch("/{comment_id:[0-9]+}", handler.update)
		commentRoute.Delete("/{comment_id:[0-9]+}", handler.delete)
	})

	return router
}

type path struct {
	titleID, reviewID, commentID int64
}

// parsePath reads the parent ids and, when withComment is set, the comment id.
func parsePath(request *http.Request, withComment bool) (path, error) {
	var parsed path
	var err error

	if parsed.titleID, err = requestutil.Int64Param(request, title.IDParam, "Title"); err != nil {
		return parsed, err
	}
	if parsed.reviewID, err = requestutil.Int64Param(request, review.IDParam, "Review"); err != nil {
		return parsed, err
	}
	if withComment {
		if parsed.commentID, err = requestutil.Int64Param(request, IDParam, "Comment"); err != nil {
			return parsed, err
		}
	}
	return parsed, nil
}

/*
GET /v1/titles/{title_id}/reviews/{review_id}/comments.

Response:
  - 200: []Comment: Paginated list, newest first
  - 404: NOT_FOUND: Unknown review, or a review of another title
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	comments, total, err := handler.service.List(request.Context(), ids.titleID, ids.reviewID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /v1/titles/{title_id}/reviews/{review_id}/comments.

Request (Body):
  - text: string (Required)

Response:
  - 201: Comment
  - 401: UNAUTHORIZED
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, false)
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

	comment, err := handler.service.Create(request.Context(), actor, ids.titleID, ids.reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Get(request.Context(), ids.titleID, ids.reviewID, ids.commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
PUT /v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}.

Response:
  - 200: Comment
  - 403: FORBIDDEN: Not the author
*/
func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true)
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

	comment, err := handler.service.Replace(request.Context(), actor, ids.titleID, ids.reviewID, ids.commentID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true)
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

	comment, err := handler.service.Update(request.Context(), actor, ids.titleID, ids.reviewID, ids.commentID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
DELETE /v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}.

Response:
  - 204: No Content
  - 403: FORBIDDEN: Neither the author nor a moderator
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	ids, err := parsePath(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actor, ids.titleID, ids.reviewID, ids.commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

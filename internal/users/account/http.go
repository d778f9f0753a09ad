// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the /users endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for /users.
//
// # Endpoints
//   - GET, PATCH /me          : Any authenticated caller.
//   - GET, POST /             : Admin only.
//   - GET, PATCH, DELETE /{username} : Admin only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(meRoute chi.Router) {
		meRoute.Use(middleware.RequirePermission(sec.Authenticated))
		meRoute.Get("/me", handler.me)
		meRoute.Patch("/me", handler.updateMe)
	})

	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequirePermission(sec.AdminOnly))
		adminRoute.Get("/", handler.list)
		adminRoute.Post("/", handler.create)
		adminRoute.Get("/{username}", handler.get)
		adminRoute.Patch("/{username}", handler.update)
		adminRoute.Delete("/{username}", handler.delete)
	})

	return router
}

/*
GET /v1/users.

Request (Query):
  - search: string (Optional, username substring)
  - page, limit: int (Optional)

Response:
  - 200: []User: Ordered by username
  - 403: FORBIDDEN: Not an admin
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := Filter{Search: requestutil.Search(request)}

	users, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /v1/users.

Request (Body):
  - username, email: string (Required)
  - first_name, last_name, bio: string (Optional)
  - role: string (Optional, default "user")

Response:
  - 201: User
  - 400: VALIDATION_ERROR or CONFLICT
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Get(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /v1/users/{username}.

Response:
  - 200: User
  - 400: VALIDATION_ERROR or CONFLICT
  - 404: NOT_FOUND
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), requestutil.Param(request, "username"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "username")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /v1/users/me.

Response:
  - 200: User: The caller's profile
  - 401: UNAUTHORIZED
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /v1/users/me.

Description: A role in the payload is ignored unless the caller is a superuser.

Response:
  - 200: User
  - 400: VALIDATION_ERROR or CONFLICT
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
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

	user, err := handler.service.UpdateMe(request.Context(), actor, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

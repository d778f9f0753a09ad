// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// IDParam is the URL parameter carrying a title id. Nested review routes
// read it too.
const IDParam = "title_id"

// Handler implements the HTTP layer for the title catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] serving /titles. Catalog permissions apply
// to the title endpoints only, so nested routers mounted on the result keep
// their own gates.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(catalogRoute chi.Router) {
		catalogRoute.Use(middleware.RequirePermission(sec.CatalogWrite))

		catalogRoute.Get("/", handler.list)
		catalogRoute.Post("/", handler.create)
		catalogRoute.Get("/{title_id:[0-9]+}", handler.get)
		catalogRoute.Put("/{title_id:[0-9]+}", handler.replace)
		catalogRoute.Patch("/{title_id:[0-9]+}", handler.update)
		catalogRoute.Delete("/{title_id:[0-9]+}", handler.delete)
	})

	return router
}

/*
GET /v1/titles.

Request:
  - category: string (Category slug)
  - genre: string (Genre slug)
  - name: string (Substring of the name)
  - year: int
  - page, limit: int

Response:
  - 200: []Title: Paginated list with ratings
  - 400: VALIDATION_ERROR: Non-numeric year
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query()

	year, err := ParseYear(query.Get("year"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
		Year:     year,
	}

	titles, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /v1/titles/{title_id}.

Response:
  - 200: Title
  - 404: NOT_FOUND
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.Int64Param(request, IDParam, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
POST /v1/titles.

Request (Body):
  - Input: {name, year, description, category (slug), genre ([]slug)}

Response:
  - 201: WriteView
  - 400: VALIDATION_ERROR: Bad year, unknown slugs, missing fields
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, view)
}

/*
PUT /v1/titles/{title_id}.

Response:
  - 200: WriteView
  - 404: NOT_FOUND
*/
func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.Int64Param(request, IDParam, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Replace(request.Context(), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
PATCH /v1/titles/{title_id}.

Request (Body):
  - Any subset of the Input fields. "category": null detaches the category.

Response:
  - 200: WriteView
  - 404: NOT_FOUND
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.Int64Param(request, IDParam, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch, err := decodePatch(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Update(request.Context(), titleID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
DELETE /v1/titles/{title_id}.

Response:
  - 204: No Content
  - 404: NOT_FOUND
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.Int64Param(request, IDParam, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// decodePatch reads a PATCH body keeping track of which keys were sent, so
// that an explicit null category can be told apart from an absent one.
func decodePatch(request *http.Request) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := requestutil.DecodeJSON(request, &raw); err != nil {
		return Patch{}, err
	}
	if raw == nil {
		return Patch{}, validate.ErrInvalidJSON
	}

	var patch Patch
	fields := []struct {
		key    string
		target any
	}{
		{FieldName, &patch.Name},
		{FieldYear, &patch.Year},
		{FieldDescription, &patch.Description},
		{FieldGenre, &patch.Genre},
	}

	for _, field := range fields {
		value, ok := raw[field.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, field.target); err != nil {
			return Patch{}, apperr.ValidationError("Invalid value", apperr.FieldError{Field: field.key, Message: "Invalid type"})
		}
	}
	_, patch.GenreSet = raw[FieldGenre]

	if value, ok := raw[FieldCategory]; ok {
		if string(value) == "null" {
			patch.ClearCategory = true
		} else if err := json.Unmarshal(value, &patch.Category); err != nil {
			return Patch{}, apperr.ValidationError("Invalid value", apperr.FieldError{Field: FieldCategory, Message: "Invalid type"})
		}
	}

	return patch, nil
}

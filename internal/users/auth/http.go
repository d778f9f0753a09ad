// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
)

// Handler implements the /auth endpoints.
type Handler struct {
	service *Service

	// exposeToken makes POST /token return the JWT in the body.
	exposeToken bool
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service, exposeToken bool) *Handler {
	return &Handler{service: service, exposeToken: exposeToken}
}

// Routes returns a [chi.Router] with the open sign-in endpoints.
//
// # Endpoints
//   - POST /signup : Sends a confirmation code.
//   - POST /email  : Alias of /signup.
//   - POST /token  : Exchanges a code for an access token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/email", handler.signup)
	router.Post("/token", handler.token)

	return router
}

type signupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

/*
POST /v1/auth/signup.

Request (Body):
  - username: string (Required, not "me")
  - email: string (Required)

Response:
  - 200: signupResponse
  - 400: VALIDATION_ERROR, or CONFLICT when either value belongs to another account
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input SignupInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signupResponse{Username: user.Username, Email: user.Email})
}

/*
POST /v1/auth/token.

Request (Body):
  - username: string (Required)
  - confirmation_code: string (Required)

Response:
  - 201: Empty, or tokenResponse when token responses are enabled
  - 400: VALIDATION_ERROR: Missing fields or an invalid code
  - 404: NOT_FOUND: Unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input TokenInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.Token(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !handler.exposeToken {
		respond.CreatedEmpty(writer)
		return
	}
	respond.Created(writer, tokenResponse{Token: token})
}

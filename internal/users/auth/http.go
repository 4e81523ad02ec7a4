// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
	"github.com/taibuivan/quillpad/internal/users/account"
	"github.com/taibuivan/quillpad/internal/users/elevation"
)

// # Definitions & Constructors

// Handler implements the sign-up and sign-in endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] mounted at /auth.
//
// # Endpoints
//   - POST /register : Creates an account or an admin request
//   - POST /login    : Authenticates and returns a JWT
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string             `json:"message"`
	User    *account.Account   `json:"user,omitempty"`
	Request *elevation.Request `json:"request,omitempty"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      *account.Account `json:"user"`
}

/*
register handles sign-up.

POST /api/auth/register

Request:
  - Body: registerRequest ("role": "admin" files an admin request instead)

Response:
  - 201: registerResponse
  - 400: Validation failure
  - 409: Email already held
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	registration, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if registration.Request != nil {
		respond.Created(writer, registerResponse{
			Message: "Admin request submitted for review",
			Request: registration.Request,
		})
		return
	}

	respond.Created(writer, registerResponse{
		Message: "User registered successfully",
		User:    registration.Account,
	})
}

/*
login authenticates a user.

POST /api/auth/login

Response:
  - 200: loginResponse
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginResponse{
		Token:     session.AccessToken,
		ExpiresAt: session.ExpiresAt,
		User:      session.Account,
	})
}

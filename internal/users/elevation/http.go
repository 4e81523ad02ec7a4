// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package elevation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
)

// Handler implements the admin request endpoints.
type Handler struct {
	elevationService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{elevationService: service}
}

// Routes returns the router mounted at /admin-requests.
//
// # Endpoints
//   - POST /      : Submit a request (public)
//   - GET  /      : List requests (superadmin)
//   - PUT  /{id}  : Accept or reject (superadmin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(access.CanManageRequests))
		r.Get("/", handler.list)
		r.Put("/{id}", handler.resolve)
	})

	return router
}

// # Request Payloads

type submitRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resolveRequest struct {
	Status string `json:"status"`
}

// # Handlers

/*
submit creates a pending admin request.

POST /api/admin-requests

Response:
  - 201: Request
  - 400: Validation failure
  - 409: Email already held
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submitRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.elevationService.Submit(request.Context(), SubmitInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
list returns every admin request, newest first.

GET /api/admin-requests
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	requests, err := handler.elevationService.List(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, requests)
}

/*
resolve accepts or rejects a pending request.

PUT /api/admin-requests/{id}

Request:
  - Body: {"status": "accepted" | "rejected"}

Response:
  - 200: Resolved request
  - 400: Unknown decision or request already resolved
  - 404: Request not found
*/
func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resolveRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolved, err := handler.elevationService.Resolve(request.Context(), actor, requestutil.ID(request, "id"), input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, resolved)
}

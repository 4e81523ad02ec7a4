// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
)

// Handler implements the tag endpoints.
type Handler struct {
	tagService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{tagService: service}
}

// Routes returns a [chi.Router] mounted at /tags.
//
// # Endpoints
//   - GET    /     : Every tag
//   - POST   /     : Create (admin, superadmin)
//   - DELETE /{id} : Delete (admin, superadmin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(access.CanManageTags))
		r.Post("/", handler.create)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

type createRequest struct {
	Name string `json:"name"`
}

// list handles GET /api/tags.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.tagService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tags)
}

/*
create handles POST /api/tags.

Response:
  - 201: Tag
  - 409: Name or slug already used
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.tagService.Create(request.Context(), actor, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, tag)
}

// delete handles DELETE /api/tags/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.tagService.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

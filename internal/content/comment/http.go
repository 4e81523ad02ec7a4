// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/platform/middleware"
	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
)

// Handler implements the comment endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] mounted at /comments.
//
// The single path parameter is a post ID for GET and POST and a comment ID
// for PUT and DELETE.
//
// # Endpoints
//   - GET    /{id} : Comments of post {id}
//   - POST   /{id} : Comment on post {id}
//   - PUT    /{id} : Edit comment {id}
//   - DELETE /{id} : Delete comment {id}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{id}", handler.add)
		r.Put("/{id}", handler.edit)
		r.Delete("/{id}", handler.remove)
	})

	return router
}

type textRequest struct {
	Text string `json:"text"`
}

// list handles GET /api/comments/{blogId}.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.commentService.List(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

// add handles POST /api/comments/{blogId}.
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input textRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Add(request.Context(), actor, requestutil.ID(request, "id"), input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// edit handles PUT /api/comments/{id}.
func (handler *Handler) edit(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input textRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.commentService.Edit(request.Context(), actor, requestutil.ID(request, "id"), input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// remove handles DELETE /api/comments/{id}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commentService.Remove(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

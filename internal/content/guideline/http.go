// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guideline

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
)

// Handler implements the guidelines endpoints.
type Handler struct {
	guidelineService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{guidelineService: service}
}

// Routes returns a [chi.Router] mounted at /guidelines.
//
// # Endpoints
//   - GET / : The guidelines document
//   - PUT / : Replace every section (superadmin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.get)
	router.With(middleware.Require(access.CanEditGuidelines)).Put("/", handler.replace)

	return router
}

type replaceRequest struct {
	Sections []Section `json:"sections"`
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	guidelines, err := handler.guidelineService.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, guidelines)
}

func (handler *Handler) replace(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input replaceRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	guidelines, err := handler.guidelineService.Replace(request.Context(), actor, input.Sections)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, guidelines)
}

// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
)

// Handler implements the dashboard endpoints.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] mounted at /admin.
//
// # Endpoints
//   - GET /stats : Total users and posts (admin, superadmin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.Require(access.CanModerate)).Get("/stats", handler.stats)
	return router
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.adminService.Stats(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

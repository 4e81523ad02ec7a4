// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/platform/constants"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
	"github.com/taibuivan/quillpad/internal/platform/validate"
)

// multipartOverhead covers boundaries and part headers around the file.
const multipartOverhead = 64 << 10

// Handler implements the upload endpoint.
type Handler struct {
	mediaService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{mediaService: service}
}

// Routes returns a [chi.Router] mounted at /media.
//
// # Endpoints
//   - POST / : multipart/form-data upload, field "file"
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireAuth).Post("/", handler.upload)
	return router
}

/*
upload stores one image.

POST /api/media

Response:
  - 201: Upload
  - 400: Missing, oversized or non-image file
  - 503: Storage not configured
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxMediaBytes+multipartOverhead)

	file, _, err := request.FormFile(FieldFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, validate.RequiredError(FieldFile, "File is too large"))
			return
		}
		respond.Error(writer, request, validate.RequiredError(FieldFile, "This field is required"))
		return
	}
	defer file.Close()

	upload, err := handler.mediaService.Store(request.Context(), actor, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, upload)
}

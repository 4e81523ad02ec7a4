// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies. Post bodies are rich text, so the
// limit is generous.
const maxBodyBytes = 2 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to cap the body size)
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Actor returns the authenticated caller, or false for anonymous requests.
*/
func Actor(request *http.Request) (access.Actor, bool) {
	return ctxutil.GetActor(request.Context())
}

/*
RequiredActor ensures the request is authenticated and returns the caller.

Returns:
  - access.Actor: The authenticated caller
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredActor(request *http.Request) (access.Actor, error) {
	actor, ok := ctxutil.GetActor(request.Context())
	if !ok {
		return access.Actor{}, apperr.Unauthorized("Authentication required")
	}
	return actor, nil
}

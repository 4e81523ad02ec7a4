// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/content/blog"
	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
)

// PostLister provides the posts shown on a profile page.
type PostLister interface {
	ListByAuthor(context context.Context, authorID string) ([]*blog.Post, error)
}

// Handler implements the profile and account management endpoints.
type Handler struct {
	accountService *Service
	posts          PostLister
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, posts PostLister) *Handler {
	return &Handler{accountService: service, posts: posts}
}

// Routes returns the self-service profile router mounted at /users.
//
// # Endpoints
//   - GET /me               : Profile and authored posts
//   - PUT /update           : Change name or avatar
//   - PUT /change-password  : Verified password change
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Put("/update", handler.updateProfile)
		r.Put("/change-password", handler.changePassword)
	})

	return router
}

// RegisterSuperadminRoutes mounts account management under a /superadmin router.
//
// # Endpoints
//   - GET /users            : Every account
//   - PUT /users/{id}/role  : Role change between user and admin
func (handler *Handler) RegisterSuperadminRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(access.CanManageAccounts))
		r.Get("/users", handler.listAccounts)
		r.Put("/users/{id}/role", handler.changeRole)
	})
}

// # Request Payloads

type updateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

type profileResponse struct {
	*Account
	Posts []*blog.Post `json:"posts"`
}

// # Handlers

/*
me returns the caller's profile with their posts.

GET /api/users/me

Response:
  - 200: profileResponse
  - 401: Not authenticated
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.GetProfile(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posts := make([]*blog.Post, 0)
	if handler.posts != nil {
		posts, err = handler.posts.ListByAuthor(request.Context(), actor.ID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.OK(writer, profileResponse{Account: account, Posts: posts})
}

/*
updateProfile changes the caller's name or avatar.

PUT /api/users/update

Response:
  - 200: Account
  - 400: Validation failure
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.UpdateProfile(request.Context(), actor, UpdateProfileInput{
		Name:      input.Name,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
changePassword replaces the caller's password.

PUT /api/users/change-password

Response:
  - 204: Password changed
  - 401: Old password mismatch
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), actor, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
listAccounts returns every account without credentials.

GET /api/superadmin/users
*/
func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	accounts, err := handler.accountService.ListAccounts(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, accounts)
}

/*
changeRole moves an account between user and admin.

PUT /api/superadmin/users/{id}/role

Request:
  - Body: {"role": "user" | "admin"}

Response:
  - 200: Updated account
  - 403: Superadmin target or superadmin role requested
  - 404: Account not found
*/
func (handler *Handler) changeRole(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changeRoleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.ChangeRole(request.Context(), actor, requestutil.ID(request, "id"), input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

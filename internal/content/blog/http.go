// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	requestutil "github.com/taibuivan/quillpad/internal/platform/request"
	"github.com/taibuivan/quillpad/internal/platform/respond"
	"github.com/taibuivan/quillpad/pkg/pagination"
	"github.com/taibuivan/quillpad/pkg/query"
)

// # Definitions & Constructors

// Handler implements the post endpoints.
type Handler struct {
	blogService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{blogService: service}
}

// Routes returns a [chi.Router] mounted at /blogs.
//
// # Endpoints
//   - GET    /             : Paginated list (search, category, tags)
//   - POST   /             : Create a post
//   - GET    /{id}         : Single post
//   - PUT    /{id}         : Author-only update
//   - DELETE /{id}         : Author-only delete
//   - PUT    /{id}/like    : Toggle like
//   - PUT    /report/{id}  : File a moderation report
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
		r.Put("/{id}/like", handler.toggleLike)
		r.Put("/report/{id}", handler.report)
	})

	return router
}

// RegisterModerationRoutes mounts the reported listing under a /superadmin router.
//
// # Endpoints
//   - GET /reported : Reported posts with their reports
func (handler *Handler) RegisterModerationRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(access.CanModerate))
		r.Get("/reported", handler.listReported)
	})
}

// # Request Payloads

type createRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	ImageURL string   `json:"imageUrl"`
	Tags     []string `json:"tags"`
}

type updateRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Category *string  `json:"category"`
	ImageURL *string  `json:"imageUrl"`
	Tags     []string `json:"tags"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}

// # Handlers

/*
list returns a page of posts.

GET /api/blogs?search=&category=&tags=a,b&page=&limit=

Response:
  - 200: Paginated []Post
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	filter := Filter{
		Search:   values.Get("search"),
		Category: values.Get("category"),
		Tags:     query.Values(values, "tags"),
	}
	params := pagination.FromRequest(request)

	posts, total, err := handler.blogService.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params, total))
}

/*
get returns a single post.

GET /api/blogs/{id}
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.blogService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
create stores a new post written by the caller.

POST /api/blogs

Response:
  - 201: Post
  - 400: Validation failure
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

	post, err := handler.blogService.Create(request.Context(), actor, CreateInput{
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		ImageURL: input.ImageURL,
		TagIDs:   input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
update edits a post written by the caller.

PUT /api/blogs/{id}

Response:
  - 200: Post
  - 403: Not the author
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.blogService.Update(request.Context(), actor, requestutil.ID(request, "id"), UpdateInput{
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		ImageURL: input.ImageURL,
		TagIDs:   input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
delete removes a post written by the caller.

DELETE /api/blogs/{id}

Response:
  - 204: Deleted
  - 403: Not the author
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.blogService.Delete(request.Context(), actor, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
toggleLike likes or unlikes a post.

PUT /api/blogs/{id}/like

Response:
  - 200: LikeState
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.blogService.ToggleLike(request.Context(), actor, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}

/*
report files a moderation report.

PUT /api/blogs/report/{id}

Request:
  - Body: {"reason": "..."}

Response:
  - 201: Report
  - 404: Post not found
*/
func (handler *Handler) report(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reportRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.blogService.Report(request.Context(), actor, requestutil.ID(request, "id"), input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}

/*
listReported returns reported posts for moderators.

GET /api/superadmin/reported

Response:
  - 200: []ReportedPost
  - 403: Standard account
*/
func (handler *Handler) listReported(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reported, err := handler.blogService.ListReported(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reported)
}

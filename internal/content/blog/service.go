// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/constants"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/validate"
	"github.com/taibuivan/quillpad/pkg/pagination"
	"github.com/taibuivan/quillpad/pkg/uuid"
)

// Field names used in validation details.
const (
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldCategory = "category"
	FieldImageURL = "imageUrl"
	FieldTags     = "tags"
	FieldReason   = "reason"

	maxCategoryLength = 100
)

// Service implements post business logic.
type Service struct {
	repository Repository
}

// NewService constructs a new post [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Reads

// List returns a filtered page of posts and the total match count.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Post, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)

	posts, total, err := service.repository.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("blog_service_list_failed: %w", err)
	}
	return posts, total, nil
}

// Get returns a single post.
func (service *Service) Get(context context.Context, id string) (*Post, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Blog")
	}

	post, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("blog_service_get_failed: %w", err)
	}
	return post, nil
}

// ListByAuthor returns every post written by authorID.
func (service *Service) ListByAuthor(context context.Context, authorID string) ([]*Post, error) {
	posts, err := service.repository.ListByAuthor(context, authorID)
	if err != nil {
		return nil, fmt.Errorf("blog_service_list_by_author_failed: %w", err)
	}
	return posts, nil
}

// # Authoring

// CreateInput carries the fields of a new post.
type CreateInput struct {
	Title    string
	Content  string
	Category string
	ImageURL string
	TagIDs   []string
}

/*
Create validates and stores a new post owned by the actor.

Returns:
  - *Post: The hydrated post
  - error: ValidationError on bad fields or unknown tags
*/
func (service *Service) Create(context context.Context, actor access.Actor, input CreateInput) (*Post, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	tagIDs := dedupe(input.TagIDs)

	validator := &validate.Validator{}
	validatePost(validator, input.Title, input.Content, input.Category, input.ImageURL)
	validateTags(validator, tagIDs)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	post := &Post{
		ID:       uuid.New(),
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		ImageURL: input.ImageURL,
	}
	post.Author.ID = actor.ID

	if err := service.repository.Create(context, post, tagIDs); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("blog_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "blog_created",
		slog.String("blog_id", post.ID),
		slog.String("author_id", actor.ID),
	)

	return post, nil
}

// UpdateInput carries a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title    *string
	Content  *string
	Category *string
	ImageURL *string
	TagIDs   []string
}

/*
Update applies a partial update to a post the actor wrote.

A nil TagIDs keeps the current tags; a non-nil one replaces them and must
still hold between one and five tags.

Returns:
  - *Post: The updated post
  - error: NotFound, Forbidden for non-authors, or ValidationError
*/
func (service *Service) Update(context context.Context, actor access.Actor, id string, input UpdateInput) (*Post, error) {
	post, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}

	if err := access.Require(access.CanMutateOwnedContent(actor.Role, actor.ID, post.Author.ID), "Only the author can edit this blog"); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Category != nil {
		post.Category = strings.TrimSpace(*input.Category)
	}
	if input.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*input.ImageURL)
	}

	var tagIDs []string
	validator := &validate.Validator{}
	validatePost(validator, post.Title, post.Content, post.Category, post.ImageURL)
	if input.TagIDs != nil {
		tagIDs = dedupe(input.TagIDs)
		validateTags(validator, tagIDs)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, post, tagIDs); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("blog_service_update_failed: %w", err)
	}

	return post, nil
}

// Delete removes a post the actor wrote.
func (service *Service) Delete(context context.Context, actor access.Actor, id string) error {
	post, err := service.Get(context, id)
	if err != nil {
		return err
	}

	if err := access.Require(access.CanMutateOwnedContent(actor.Role, actor.ID, post.Author.ID), "Only the author can delete this blog"); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("blog_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "blog_deleted",
		slog.String("blog_id", id),
		slog.String("actor_id", actor.ID),
	)
	return nil
}

// # Engagement

// ToggleLike likes the post for the actor, or removes an existing like.
func (service *Service) ToggleLike(context context.Context, actor access.Actor, id string) (*LikeState, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Blog")
	}

	state, err := service.repository.ToggleLike(context, id, actor.ID)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("blog_service_toggle_like_failed: %w", err)
	}
	return state, nil
}

/*
Report files a moderation report against a post.

Returns:
  - *Report: The stored report
  - error: ValidationError on an empty reason, NotFound if the post is gone
*/
func (service *Service) Report(context context.Context, actor access.Actor, id, reason string) (*Report, error) {
	reason = strings.TrimSpace(reason)

	validator := &validate.Validator{}
	validator.Required(FieldReason, reason).
		MaxLen(FieldReason, reason, constants.MaxReportReasonLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Blog")
	}

	report := &Report{
		ID:     uuid.New(),
		BlogID: id,
		Reason: reason,
	}
	report.Reporter.ID = actor.ID

	if err := service.repository.AddReport(context, report); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("blog_service_report_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "blog_reported",
		slog.String("blog_id", id),
		slog.String("report_id", report.ID),
		slog.String("reporter_id", actor.ID),
	)

	return report, nil
}

// ListReported returns reported posts for a moderator.
func (service *Service) ListReported(context context.Context, actor access.Actor) ([]*ReportedPost, error) {
	if err := access.Require(access.CanModerate(actor.Role), "Only admins can view reported blogs"); err != nil {
		return nil, err
	}

	reported, err := service.repository.ListReported(context)
	if err != nil {
		return nil, fmt.Errorf("blog_service_list_reported_failed: %w", err)
	}
	return reported, nil
}

// # Helpers

func validatePost(validator *validate.Validator, title, content, category, imageURL string) {
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, constants.MaxTitleLength).
		Required(FieldContent, content).
		MaxLen(FieldCategory, category, maxCategoryLength).
		URL(FieldImageURL, imageURL)
}

func validateTags(validator *validate.Validator, tagIDs []string) {
	validator.Count(FieldTags, len(tagIDs), constants.MinTagsPerPost, constants.MaxTagsPerPost)
	for _, id := range tagIDs {
		validator.UUID(FieldTags, id)
	}
}

// dedupe trims ids and drops blanks and repeats, preserving order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

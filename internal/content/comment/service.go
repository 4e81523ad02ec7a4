// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/validate"
	"github.com/taibuivan/quillpad/pkg/uuid"
)

const (
	// FieldText is the validation detail field of the comment body.
	FieldText = "text"

	maxTextLength = 2000
)

// Service implements comment business logic.
type Service struct {
	repository Repository
}

// NewService constructs a new comment [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// List returns the comments of a post, newest first.
func (service *Service) List(context context.Context, blogID string) ([]*Comment, error) {
	if !uuid.Valid(blogID) {
		return nil, apperr.NotFound("Blog")
	}

	comments, err := service.repository.ListByBlog(context, blogID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_failed: %w", err)
	}
	return comments, nil
}

/*
Add stores a new comment written by the actor.

Returns:
  - *Comment: The stored comment with its author
  - error: ValidationError on empty text, NotFound if the post is gone
*/
func (service *Service) Add(context context.Context, actor access.Actor, blogID, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if err := validateText(text); err != nil {
		return nil, err
	}

	if !uuid.Valid(blogID) {
		return nil, apperr.NotFound("Blog")
	}

	comment := &Comment{
		ID:     uuid.New(),
		BlogID: blogID,
		Text:   text,
	}
	comment.Author.ID = actor.ID

	if err := service.repository.Create(context, comment); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("comment_service_add_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "comment_added",
		slog.String("comment_id", comment.ID),
		slog.String("blog_id", blogID),
	)
	return comment, nil
}

// Edit replaces the text of a comment the actor wrote.
func (service *Service) Edit(context context.Context, actor access.Actor, id, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if err := validateText(text); err != nil {
		return nil, err
	}

	comment, err := service.owned(context, actor, id, "Only the author can edit this comment")
	if err != nil {
		return nil, err
	}

	comment.Text = text
	if err := service.repository.UpdateText(context, comment); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("comment_service_edit_failed: %w", err)
	}
	return comment, nil
}

// Remove deletes a comment the actor wrote.
func (service *Service) Remove(context context.Context, actor access.Actor, id string) error {
	if _, err := service.owned(context, actor, id, "Only the author can delete this comment"); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("comment_service_remove_failed: %w", err)
	}
	return nil
}

func (service *Service) owned(context context.Context, actor access.Actor, id, denied string) (*Comment, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Comment")
	}

	comment, err := service.repository.FindByID(context, id)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("comment_service_find_failed: %w", err)
	}

	if err := access.Require(access.CanMutateOwnedContent(actor.Role, actor.ID, comment.Author.ID), denied); err != nil {
		return nil, err
	}
	return comment, nil
}

func validateText(text string) error {
	validator := &validate.Validator{}
	validator.Required(FieldText, text).MaxLen(FieldText, text, maxTextLength)
	return validator.Err()
}

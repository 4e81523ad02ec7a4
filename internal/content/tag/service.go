// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/validate"
	"github.com/taibuivan/quillpad/pkg/slug"
	"github.com/taibuivan/quillpad/pkg/uuid"
)

const (
	// FieldName is the validation detail field of the tag name.
	FieldName = "name"

	maxNameLength = 50
)

// Service implements tag business logic.
type Service struct {
	repository Repository
}

// NewService constructs a new tag [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// List returns every tag.
func (service *Service) List(context context.Context) ([]*Tag, error) {
	tags, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("tag_service_list_failed: %w", err)
	}
	return tags, nil
}

/*
Create adds a tag for a moderator.

The slug is derived from the name; a name that yields no slug characters
(for example only punctuation) is rejected.

Returns:
  - *Tag: The stored tag
  - error: Forbidden, ValidationError or Conflict
*/
func (service *Service) Create(context context.Context, actor access.Actor, name string) (*Tag, error) {
	if err := access.Require(access.CanManageTags(actor.Role), "Not authorized to create tags"); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	tagSlug := slug.From(name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	if name != "" {
		validator.Slug(FieldName, tagSlug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag := &Tag{ID: uuid.New(), Name: name, Slug: tagSlug}
	if err := service.repository.Create(context, tag); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("tag_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "tag_created",
		slog.String("tag_id", tag.ID),
		slog.String("slug", tag.Slug),
	)
	return tag, nil
}

// Delete removes a tag for a moderator.
func (service *Service) Delete(context context.Context, actor access.Actor, id string) error {
	if err := access.Require(access.CanManageTags(actor.Role), "Not authorized to delete tags"); err != nil {
		return err
	}

	if !uuid.Valid(id) {
		return apperr.NotFound("Tag")
	}

	if err := service.repository.Delete(context, id); err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("tag_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "tag_deleted", slog.String("tag_id", id))
	return nil
}

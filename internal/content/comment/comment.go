// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements the flat comment list attached to each post.
// Only the author of a comment may edit or delete it.
package comment

import (
	"context"
	"time"

	"github.com/taibuivan/quillpad/internal/content"
)

// Comment is a single comment with its author hydrated.
type Comment struct {
	ID        string            `json:"id"`
	BlogID    string            `json:"blogId"`
	Author    content.AuthorRef `json:"author"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Repository defines the persistence contract for comments.
type Repository interface {
	// ListByBlog returns the comments of a post, newest first.
	ListByBlog(context context.Context, blogID string) ([]*Comment, error)

	// FindByID retrieves a comment, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Comment, error)

	// Create stores a comment; apperr.NotFound("Blog") if the post is gone.
	Create(context context.Context, comment *Comment) error

	// UpdateText replaces the text of a comment.
	UpdateText(context context.Context, comment *Comment) error

	Delete(context context.Context, id string) error
}

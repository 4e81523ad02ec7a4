// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tag manages the moderator-curated tag vocabulary posts draw from.
package tag

import (
	"context"
	"time"
)

// Tag is a named label with a URL slug. Both are unique.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository defines the persistence contract for tags.
type Repository interface {
	// List returns every tag, newest first.
	List(context context.Context) ([]*Tag, error)

	// Create stores a tag; apperr.Conflict if the name or slug is taken.
	Create(context context.Context, tag *Tag) error

	// Delete removes a tag and unlinks it from every post.
	Delete(context context.Context, id string) error
}

// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guideline stores the community guidelines document.

There is exactly one document. It is created with [DefaultSections] the
first time it is read, and only the superadmin may replace it.
*/
package guideline

import (
	"context"
	"time"
)

// Section is a titled list of rules.
type Section struct {
	Title string   `json:"title"`
	Rules []string `json:"rules"`
}

// Guidelines is the whole document.
type Guidelines struct {
	Sections  []Section `json:"sections"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
}

// DefaultSections returns the sections a fresh installation starts with.
func DefaultSections() []Section {
	return []Section{
		{Title: "Writing a Blog", Rules: []string{}},
		{Title: "Reporting a Blog", Rules: []string{}},
		{Title: "Commenting", Rules: []string{}},
		{Title: "Reporting a Comment", Rules: []string{}},
	}
}

// Repository defines the persistence contract for the guidelines document.
type Repository interface {
	// Get returns the document, storing defaults first if none exists yet.
	Get(context context.Context, defaults []Section) (*Guidelines, error)

	// Replace overwrites every section.
	Replace(context context.Context, sections []Section, updatedBy string) (*Guidelines, error)
}

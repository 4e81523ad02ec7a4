// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog implements community posts: authoring, discovery, likes and
moderation reports.

Only the author may edit or delete a post. Any signed-in account may like
or report one; reports are advisory and visible to moderators only.
*/
package blog

import (
	"context"
	"time"

	"github.com/taibuivan/quillpad/internal/content"
)

// # Domain Entities

// Post is a blog post with its author, tags and likes hydrated.
type Post struct {
	ID        string            `json:"id"`
	Author    content.AuthorRef `json:"author"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Category  string            `json:"category"`
	ImageURL  string            `json:"imageUrl"`
	Tags      []content.TagRef  `json:"tags"`
	Likes     []string          `json:"likes"`
	LikeCount int               `json:"likeCount"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Report is a moderation flag filed against a post.
type Report struct {
	ID        string            `json:"id"`
	BlogID    string            `json:"-"`
	Reporter  content.AuthorRef `json:"reporter"`
	Reason    string            `json:"reason"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ReportedPost is a post together with every report filed against it,
// most recent first.
type ReportedPost struct {
	*Post
	Reports        []Report  `json:"reports"`
	LastReportedAt time.Time `json:"lastReportedAt"`
}

// LikeState is the result of toggling a like.
type LikeState struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// Filter narrows a post listing. Zero values mean no restriction.
type Filter struct {
	// Search matches the title or the author name, case-insensitively.
	Search   string
	Category string

	// Tags holds tag slugs; a post matches if it carries any of them.
	Tags []string
}

// # Repository Contracts

// Repository defines the persistence contract for posts.
type Repository interface {
	// List returns a page of posts, newest first, and the total match count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error)

	// FindByID retrieves a hydrated post, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Post, error)

	// ListByAuthor returns every post written by authorID, newest first.
	ListByAuthor(context context.Context, authorID string) ([]*Post, error)

	/*
		Create inserts a post and its tag links in one transaction.

		Returns:
		  - error: apperr.ValidationError if a tag ID does not exist
	*/
	Create(context context.Context, post *Post, tagIDs []string) error

	// Update persists title, content, category and image. A nil tagIDs
	// keeps the current tags.
	Update(context context.Context, post *Post, tagIDs []string) error

	// Delete removes a post with its tags, likes, reports and comments.
	Delete(context context.Context, id string) error

	// ToggleLike adds the like of accountID, or removes it if present.
	ToggleLike(context context.Context, blogID, accountID string) (*LikeState, error)

	// AddReport files a report; apperr.NotFound if the post is gone.
	AddReport(context context.Context, report *Report) error

	// ListReported returns posts with at least one report, ordered by their
	// most recent report.
	ListReported(context context.Context) ([]*ReportedPost, error)
}

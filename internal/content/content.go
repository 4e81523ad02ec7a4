// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content holds the reference types shared by the community content
packages: blog posts, comments, tags and guidelines.

Authorship is stored as an account ID and hydrated into an [AuthorRef] on
read, so content never carries credentials or roles.
*/
package content

// AuthorRef is the public view of an account attached to content.
type AuthorRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// TagRef is a tag attached to a post.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

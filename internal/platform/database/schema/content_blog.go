// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentBlogTable represents the 'content.blog' table
type ContentBlogTable struct {
	Table     string
	ID        string
	AuthorID  string
	Title     string
	Content   string
	Category  string
	ImageURL  string
	CreatedAt string
	UpdatedAt string
}

// ContentBlog is the schema definition for content.blog
var ContentBlog = ContentBlogTable{
	Table:     "content.blog",
	ID:        "id",
	AuthorID:  "authorid",
	Title:     "title",
	Content:   "content",
	Category:  "category",
	ImageURL:  "imageurl",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ContentBlogTable) Columns() []string {
	return []string{t.ID, t.AuthorID, t.Title, t.Content, t.Category, t.ImageURL, t.CreatedAt, t.UpdatedAt}
}

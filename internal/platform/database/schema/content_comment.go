// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentCommentTable represents the 'content.comment' table
type ContentCommentTable struct {
	Table     string
	ID        string
	BlogID    string
	AuthorID  string
	Text      string
	CreatedAt string
	UpdatedAt string
}

// ContentComment is the schema definition for content.comment
var ContentComment = ContentCommentTable{
	Table:     "content.comment",
	ID:        "id",
	BlogID:    "blogid",
	AuthorID:  "authorid",
	Text:      "text",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ContentCommentTable) Columns() []string {
	return []string{t.ID, t.BlogID, t.AuthorID, t.Text, t.CreatedAt, t.UpdatedAt}
}

// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentBlogLikeTable represents the 'content.bloglike' table
type ContentBlogLikeTable struct {
	Table     string
	BlogID    string
	AccountID string
	CreatedAt string
}

// ContentBlogLike is the schema definition for content.bloglike
var ContentBlogLike = ContentBlogLikeTable{
	Table:     "content.bloglike",
	BlogID:    "blogid",
	AccountID: "accountid",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t ContentBlogLikeTable) Columns() []string {
	return []string{t.BlogID, t.AccountID, t.CreatedAt}
}

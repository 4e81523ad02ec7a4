// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentBlogTagTable represents the 'content.blogtag' table
type ContentBlogTagTable struct {
	Table  string
	BlogID string
	TagID  string
}

// ContentBlogTag is the schema definition for content.blogtag
var ContentBlogTag = ContentBlogTagTable{
	Table:  "content.blogtag",
	BlogID: "blogid",
	TagID:  "tagid",
}

// Columns returns all standard column names
func (t ContentBlogTagTable) Columns() []string {
	return []string{t.BlogID, t.TagID}
}

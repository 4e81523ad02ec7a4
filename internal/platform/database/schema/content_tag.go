// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentTagTable represents the 'content.tag' table
type ContentTagTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	CreatedAt string
}

// ContentTag is the schema definition for content.tag
var ContentTag = ContentTagTable{
	Table:     "content.tag",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t ContentTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.CreatedAt}
}

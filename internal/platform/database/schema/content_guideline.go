// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentGuidelineTable represents the 'content.guideline' table
type ContentGuidelineTable struct {
	Table     string
	ID        string
	Sections  string
	UpdatedAt string
	UpdatedBy string
}

// ContentGuideline is the schema definition for content.guideline
var ContentGuideline = ContentGuidelineTable{
	Table:     "content.guideline",
	ID:        "id",
	Sections:  "sections",
	UpdatedAt: "updatedat",
	UpdatedBy: "updatedby",
}

// Columns returns all standard column names
func (t ContentGuidelineTable) Columns() []string {
	return []string{t.ID, t.Sections, t.UpdatedAt, t.UpdatedBy}
}

// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentBlogReportTable represents the 'content.blogreport' table
type ContentBlogReportTable struct {
	Table      string
	ID         string
	BlogID     string
	ReporterID string
	Reason     string
	CreatedAt  string
}

// ContentBlogReport is the schema definition for content.blogreport
var ContentBlogReport = ContentBlogReportTable{
	Table:      "content.blogreport",
	ID:         "id",
	BlogID:     "blogid",
	ReporterID: "reporterid",
	Reason:     "reason",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t ContentBlogReportTable) Columns() []string {
	return []string{t.ID, t.BlogID, t.ReporterID, t.Reason, t.CreatedAt}
}

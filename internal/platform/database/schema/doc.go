// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names every table and column used by the Postgres
// repositories, so SQL is assembled from one source of truth that mirrors
// data/migrations.
package schema

import "strings"

// List joins column names for a SELECT or INSERT column list.
func List(columns ...string) string {
	return strings.Join(columns, ", ")
}

// Prefixed qualifies every column with a table alias, e.g. "b.id, b.title".
func Prefixed(alias string, columns ...string) string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

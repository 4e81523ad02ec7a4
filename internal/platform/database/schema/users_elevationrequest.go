// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserElevationRequestTable represents the 'users.elevationrequest' table
type UserElevationRequestTable struct {
	Table      string
	ID         string
	Name       string
	Email      string
	Password   string
	Status     string
	CreatedAt  string
	ResolvedAt string
	ResolvedBy string
}

// UserElevationRequest is the schema definition for users.elevationrequest
var UserElevationRequest = UserElevationRequestTable{
	Table:      "users.elevationrequest",
	ID:         "id",
	Name:       "name",
	Email:      "email",
	Password:   "passwordhash",
	Status:     "status",
	CreatedAt:  "createdat",
	ResolvedAt: "resolvedat",
	ResolvedBy: "resolvedby",
}

// Columns returns all standard column names
func (t UserElevationRequestTable) Columns() []string {
	return []string{t.ID, t.Name, t.Email, t.Password, t.Status, t.CreatedAt, t.ResolvedAt, t.ResolvedBy}
}

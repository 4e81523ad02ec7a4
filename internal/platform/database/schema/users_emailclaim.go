// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserEmailClaimTable represents the 'users.emailclaim' table
type UserEmailClaimTable struct {
	Table     string
	Email     string
	Holder    string
	HolderID  string
	CreatedAt string
}

// UserEmailClaim is the schema definition for users.emailclaim
var UserEmailClaim = UserEmailClaimTable{
	Table:     "users.emailclaim",
	Email:     "email",
	Holder:    "holder",
	HolderID:  "holderid",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t UserEmailClaimTable) Columns() []string {
	return []string{t.Email, t.Holder, t.HolderID, t.CreatedAt}
}

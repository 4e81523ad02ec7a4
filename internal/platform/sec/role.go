// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// The set is closed: any value outside the three constants below is treated
// as having no privileges at all by [UserRole.Valid] and every access check.
type UserRole string

const (
	// RoleSupreme is the single superadmin account. It can never be reassigned.
	RoleSupreme UserRole = "superadmin"

	// RoleElevated can moderate community content, tags and reports.
	RoleElevated UserRole = "admin"

	// RoleStandard is the default role for registered authors.
	RoleStandard UserRole = "user"
)

// ParseRole converts a raw wire value into a [UserRole].
// The second return value is false if raw is not one of the known roles.
func ParseRole(raw string) (UserRole, bool) {
	role := UserRole(raw)
	return role, role.Valid()
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleSupreme, RoleElevated, RoleStandard:
		return true
	default:
		return false
	}
}

// Assignable reports whether r may be granted through a role change.
// Only standard and elevated are assignable; supreme is seeded, never granted.
func (r UserRole) Assignable() bool {
	switch r {
	case RoleElevated, RoleStandard:
		return true
	case RoleSupreme:
		return false
	default:
		return false
	}
}

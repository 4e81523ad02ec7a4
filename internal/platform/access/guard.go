// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access is the single authorization decision point of Quillpad.

Every role-sensitive operation (request review, role management, moderation,
content ownership, tags and guidelines) asks this package instead of
comparing role strings inline.

All functions are pure: they take the actor and the target and return a
boolean. Each one switches exhaustively over [sec.UserRole], so an unknown
role value never falls through into an allow.
*/
package access

import (
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/sec"
)

// Actor is the authenticated caller of an operation, rebuilt from the
// verified access token.
type Actor struct {
	ID   string
	Role sec.UserRole
}

// # Role Decisions

// CanManageRequests reports whether role may list and resolve elevation requests.
func CanManageRequests(role sec.UserRole) bool {
	switch role {
	case sec.RoleSupreme:
		return true
	case sec.RoleElevated, sec.RoleStandard:
		return false
	default:
		return false
	}
}

// CanManageAccounts reports whether role may list every account.
func CanManageAccounts(role sec.UserRole) bool {
	switch role {
	case sec.RoleSupreme:
		return true
	case sec.RoleElevated, sec.RoleStandard:
		return false
	default:
		return false
	}
}

// CanChangeRole reports whether actorRole may move a target account from
// current to next. Only supreme actors may change roles, a supreme target is
// immutable, and next must be an assignable role.
func CanChangeRole(actorRole, current, next sec.UserRole) bool {
	switch actorRole {
	case sec.RoleSupreme:
	case sec.RoleElevated, sec.RoleStandard:
		return false
	default:
		return false
	}

	switch current {
	case sec.RoleElevated, sec.RoleStandard:
	case sec.RoleSupreme:
		return false
	default:
		return false
	}

	return next.Assignable()
}

// CanModerate reports whether role may view reports and statistics.
func CanModerate(role sec.UserRole) bool {
	switch role {
	case sec.RoleSupreme, sec.RoleElevated:
		return true
	case sec.RoleStandard:
		return false
	default:
		return false
	}
}

// CanManageTags reports whether role may create and delete tags.
func CanManageTags(role sec.UserRole) bool {
	return CanModerate(role)
}

// CanEditGuidelines reports whether role may replace the community guidelines.
func CanEditGuidelines(role sec.UserRole) bool {
	switch role {
	case sec.RoleSupreme:
		return true
	case sec.RoleElevated, sec.RoleStandard:
		return false
	default:
		return false
	}
}

// # Ownership

// CanMutateOwnedContent reports whether the actor may edit or delete content
// owned by ownerID. Authorship alone decides; the role only needs to be a
// known one.
func CanMutateOwnedContent(role sec.UserRole, actorID, ownerID string) bool {
	switch role {
	case sec.RoleSupreme, sec.RoleElevated, sec.RoleStandard:
		return actorID != "" && actorID == ownerID
	default:
		return false
	}
}

// # Enforcement

// Require turns a boolean decision into a Forbidden error.
func Require(allowed bool, message string) error {
	if allowed {
		return nil
	}
	return apperr.Forbidden(message)
}

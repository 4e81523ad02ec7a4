// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package elevation implements the admin request lifecycle.

A prospective admin submits a request with a name, email and password. The
password is hashed at submission and staged on the request. The superadmin
then resolves it exactly once:

	        Submit
	(none) ───────► pending
	                  │ accepted            │ rejected
	                  ▼                     ▼
	              accepted (terminal)   rejected (terminal)

Accepting creates an admin account that reuses the staged hash. Rejecting has
no side effect other than releasing the email for a later registration.
*/
package elevation

import (
	"context"
	"time"

	"github.com/taibuivan/quillpad/internal/users/account"
)

// # Domain Entities

// Status is the lifecycle state of a [Request].
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseDecision converts a raw resolution value into a terminal [Status].
// pending is not a decision.
func ParseDecision(raw string) (Status, bool) {
	status := Status(raw)
	if !status.Terminal() {
		return "", false
	}
	return status, true
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusRejected:
		return true
	case StatusPending:
		return false
	default:
		return false
	}
}

// Request is an application to become an admin.
type Request struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy   *string    `json:"resolvedBy,omitempty"`
}

// Resolution describes a single pending → terminal transition.
type Resolution struct {
	RequestID  string
	Decision   Status
	ResolvedBy string

	// AccountID is the ID given to the account created on acceptance.
	AccountID string
}

// # Repository Contracts

// Repository defines the persistence contract for elevation requests.
type Repository interface {
	/*
		Create stores a pending request and claims its email.

		Returns:
		  - error: apperr.Conflict if the email is held by an account or a live request
	*/
	Create(context context.Context, request *Request) error

	// FindByID retrieves a request, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Request, error)

	// List returns every request, newest first.
	List(context context.Context) ([]*Request, error)

	/*
		Resolve moves a pending request to resolution.Decision atomically.

		On acceptance the admin account is inserted in the same transaction as
		the status change, using the staged password hash unchanged.

		Returns:
		  - *Request: The resolved request
		  - *account.Account: The created account, nil on rejection
		  - error: apperr.NotFound, or apperr.InvalidState if already resolved
	*/
	Resolve(context context.Context, resolution Resolution) (*Request, *account.Account, error)
}

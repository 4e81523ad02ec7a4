// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account owns the Account record: registration storage, profile
changes, password changes and role management.

# Email Ownership

An email address can be held by exactly one Account or one live
ElevationRequest at a time. Both stores claim the address in
users.emailclaim inside the transaction that creates the holder, so the
primary key on that table serializes concurrent registrations.
*/
package account

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/quillpad/internal/platform/sec"
)

// # Domain Entities

// Account is a registered user.
type Account struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	AvatarURL    *string      `json:"avatarUrl,omitempty"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Holder identifies which kind of record owns an email claim.
type Holder string

const (
	HolderAccount Holder = "account"
	HolderRequest Holder = "request"
)

// NormalizeEmail returns the canonical stored form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Repository Contracts

// Repository defines the persistence contract for accounts.
type Repository interface {
	/*
		Create inserts a new account and claims its email.

		Returns:
		  - error: apperr.Conflict if the email is held by an account or a live request
	*/
	Create(context context.Context, account *Account) error

	// FindByID retrieves an account by ID, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Account, error)

	// FindByEmail retrieves an account by normalized email, or apperr.NotFound.
	FindByEmail(context context.Context, email string) (*Account, error)

	// List returns every account, newest first.
	List(context context.Context) ([]*Account, error)

	/*
		SetRole changes the role of an account in a single conditional update.

		The current role is re-read by the same statement that writes the new
		one, so a supreme account can never be changed.

		Returns:
		  - *Account: The updated account
		  - error: apperr.Forbidden for a supreme target or a supreme newRole,
		    apperr.NotFound if the account does not exist
	*/
	SetRole(context context.Context, id string, newRole sec.UserRole) (*Account, error)

	// Update persists name and avatar changes.
	Update(context context.Context, account *Account) error

	// UpdatePassword replaces the stored credential hash.
	UpdatePassword(context context.Context, id, passwordHash string) error

	/*
		EnsureSupreme inserts account as the supreme account unless one exists.

		Returns:
		  - bool: true if this call created the account
		  - error: storage failures; losing a concurrent seed is not an error
	*/
	EnsureSupreme(context context.Context, account *Account) (bool, error)
}

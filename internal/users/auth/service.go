// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements registration and sign-in.

Registration either creates a standard account directly or, when the caller
asks for the admin role, files an elevation request that the superadmin
reviews later. Sign-in verifies the bcrypt hash and issues an HS256 access
token carrying the account ID and role.

Tokens are invalidated early in one case: after a role change, every token
issued to that account before the change is rejected (see
[RoleStampRepository]).
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/sec"
	"github.com/taibuivan/quillpad/internal/platform/validate"
	"github.com/taibuivan/quillpad/internal/users/account"
	"github.com/taibuivan/quillpad/internal/users/elevation"
)

// Field names used in validation details.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
)

// # Contracts & Types

// TokenProvider issues signed access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID string, role sec.UserRole) (string, time.Time, error)
}

// AccountStore is the subset of the account service used by auth.
type AccountStore interface {
	CreateStandard(context context.Context, input account.CreateInput) (*account.Account, error)
	FindByEmail(context context.Context, email string) (*account.Account, error)
}

// RequestSubmitter files admin requests.
type RequestSubmitter interface {
	Submit(context context.Context, input elevation.SubmitInput) (*elevation.Request, error)
}

// Service implements authentication use cases.
type Service struct {
	accounts      AccountStore
	requests      RequestSubmitter
	tokenProvider TokenProvider
}

// NewService constructs a new auth [Service].
func NewService(accounts AccountStore, requests RequestSubmitter, tokenProvider TokenProvider) *Service {
	return &Service{
		accounts:      accounts,
		requests:      requests,
		tokenProvider: tokenProvider,
	}
}

// # Registration Flow

// RegisterInput holds the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string

	// Role is empty or "user" for a writer account, "admin" for an admin request.
	Role string
}

// Registration is the outcome of [Service.Register]. Exactly one field is set.
type Registration struct {
	Account *account.Account
	Request *elevation.Request
}

/*
Register creates a standard account, or an admin request when Role is "admin".

The superadmin role cannot be requested.

Returns:
  - *Registration: The created account or pending request
  - error: ValidationError, Forbidden or Conflict
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Registration, error) {
	role := sec.RoleStandard
	if input.Role != "" {
		parsed, ok := sec.ParseRole(input.Role)
		if !ok {
			return nil, validate.RequiredError(FieldRole, "Must be one of: user, admin")
		}
		role = parsed
	}

	switch role {
	case sec.RoleStandard:
		created, err := service.accounts.CreateStandard(context, account.CreateInput{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			return nil, err
		}
		return &Registration{Account: created}, nil

	case sec.RoleElevated:
		request, err := service.requests.Submit(context, elevation.SubmitInput{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			return nil, err
		}
		return &Registration{Request: request}, nil

	case sec.RoleSupreme:
		return nil, apperr.Forbidden("The superadmin role cannot be requested")

	default:
		return nil, validate.RequiredError(FieldRole, "Must be one of: user, admin")
	}
}

// # Authentication Flow

// Session is a successfully established sign-in.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Account     *account.Account
}

/*
Login verifies credentials and issues an access token.

Unknown emails and wrong passwords produce the same error.

Returns:
  - *Session: Token and account
  - error: Unauthorized on bad credentials
*/
func (service *Service) Login(context context.Context, email, password string) (*Session, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	found, err := service.accounts.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, found.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	token, expiresAt, err := service.tokenProvider.GenerateAccessToken(found.ID, found.Role)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Account:     found,
	}, nil
}

// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/sec"
	"github.com/taibuivan/quillpad/internal/platform/validate"
	"github.com/taibuivan/quillpad/pkg/pointer"
	"github.com/taibuivan/quillpad/pkg/uuid"
)

// Field names used in validation details.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldOldPassword = "oldPassword"
	FieldNewPassword = "newPassword"
	FieldAvatarURL   = "avatarUrl"
	FieldRole        = "role"
	maxNameLength    = 100
)

// SessionRevoker invalidates tokens issued to an account before a role change.
type SessionRevoker interface {
	Revoke(context context.Context, accountID string) error
}

// Service implements account management use cases.
type Service struct {
	repository Repository
	revoker    SessionRevoker
}

// NewService constructs a new account [Service]. revoker may be nil.
func NewService(repository Repository, revoker SessionRevoker) *Service {
	return &Service{repository: repository, revoker: revoker}
}

// # Creation

// CreateInput is the data needed to create a standard account.
type CreateInput struct {
	Name     string
	Email    string
	Password string
}

/*
CreateStandard validates input, hashes the password and stores a new
standard account.

Returns:
  - *Account: The created account
  - error: ValidationError, or Conflict if the email is already held
*/
func (service *Service) CreateStandard(context context.Context, input CreateInput) (*Account, error) {
	email := NormalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, maxNameLength).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &Account{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleStandard,
	}

	if err := service.repository.Create(context, account); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	return account, nil
}

// # Profile

// GetProfile returns the account of the caller.
func (service *Service) GetProfile(context context.Context, actor access.Actor) (*Account, error) {
	return service.repository.FindByID(context, actor.ID)
}

// FindByEmail looks an account up by email, normalizing it first.
func (service *Service) FindByEmail(context context.Context, email string) (*Account, error) {
	return service.repository.FindByEmail(context, NormalizeEmail(email))
}

// UpdateProfileInput carries optional profile changes. Nil fields are kept.
type UpdateProfileInput struct {
	Name      *string
	AvatarURL *string
}

/*
UpdateProfile changes the name and avatar of the caller.

An empty avatar URL clears the avatar.
*/
func (service *Service) UpdateProfile(context context.Context, actor access.Actor, input UpdateProfileInput) (*Account, error) {
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, maxNameLength)
	}
	if input.AvatarURL != nil {
		validator.URL(FieldAvatarURL, *input.AvatarURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	account, err := service.repository.FindByID(context, actor.ID)
	if err != nil {
		return nil, err
	}

	account.Name = pointer.Fallback(input.Name, account.Name)
	if input.AvatarURL != nil {
		if *input.AvatarURL == "" {
			account.AvatarURL = nil
		} else {
			avatar := *input.AvatarURL
			account.AvatarURL = &avatar
		}
	}

	if err := service.repository.Update(context, account); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("account_service_update_profile_failed: %w", err)
	}

	return account, nil
}

/*
ChangePassword replaces the caller's password after verifying the old one.

Returns:
  - error: Unauthorized if oldPassword does not match, ValidationError on an
    empty new password
*/
func (service *Service) ChangePassword(context context.Context, actor access.Actor, oldPassword, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, oldPassword).
		Required(FieldNewPassword, newPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	account, err := service.repository.FindByID(context, actor.ID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(oldPassword, account.PasswordHash) {
		return apperr.Unauthorized("Old password is incorrect")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := service.repository.UpdatePassword(context, account.ID, hash); err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return fmt.Errorf("account_service_change_password_failed: %w", err)
	}

	return nil
}

// # Role Management

// ListAccounts returns every account for a caller allowed to manage them.
func (service *Service) ListAccounts(context context.Context, actor access.Actor) ([]*Account, error) {
	if err := access.Require(access.CanManageAccounts(actor.Role), "Only the superadmin can list accounts"); err != nil {
		return nil, err
	}

	accounts, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return accounts, nil
}

/*
ChangeRole moves an account between the standard and elevated roles.

The guard runs against the current stored role, then the store repeats the
supreme check in the same statement that writes. Tokens issued to the target
before the change are revoked; a revocation failure is logged but does not
undo the change.

Returns:
  - *Account: The updated account
  - error: ValidationError on an unknown role, Forbidden, or NotFound
*/
func (service *Service) ChangeRole(context context.Context, actor access.Actor, accountID, rawRole string) (*Account, error) {
	newRole, ok := sec.ParseRole(rawRole)
	if !ok {
		return nil, apperr.ValidationError("Invalid role", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of: user, admin",
		})
	}

	if !uuid.Valid(accountID) {
		return nil, apperr.NotFound("Account")
	}

	target, err := service.repository.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	if !access.CanChangeRole(actor.Role, target.Role, newRole) {
		return nil, apperr.Forbidden("This role change is not permitted")
	}

	updated, err := service.repository.SetRole(context, accountID, newRole)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("account_service_change_role_failed: %w", err)
	}

	logger := ctxutil.GetLogger(context)
	logger.InfoContext(context, "account_role_changed",
		slog.String("account_id", updated.ID),
		slog.String("from", string(target.Role)),
		slog.String("to", string(updated.Role)),
		slog.String("actor_id", actor.ID),
	)

	if service.revoker != nil && target.Role != updated.Role {
		if err := service.revoker.Revoke(context, updated.ID); err != nil {
			logger.WarnContext(context, "account_session_revoke_failed",
				slog.String("account_id", updated.ID),
				slog.Any("error", err),
			)
		}
	}

	return updated, nil
}

// # Bootstrap

// SeedInput configures the supreme account created at bootstrap.
type SeedInput struct {
	Name     string
	Email    string
	Password string
}

/*
SeedSupreme creates the supreme account if none exists yet.

It is safe to call from every instance at startup.

Returns:
  - bool: true if this call created the account
*/
func (service *Service) SeedSupreme(context context.Context, input SeedInput) (bool, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return false, err
	}

	account := &Account{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         sec.RoleSupreme,
	}

	created, err := service.repository.EnsureSupreme(context, account)
	if err != nil {
		if apperr.IsAppError(err) {
			return false, err
		}
		return false, fmt.Errorf("account_service_seed_supreme_failed: %w", err)
	}

	return created, nil
}

func hashPassword(password string) (string, error) {
	hash, err := sec.HashPassword(password)
	if err != nil {
		if errors.Is(err, sec.ErrPasswordTooLong) {
			return "", apperr.ValidationError("Password is too long", apperr.FieldError{
				Field:   FieldPassword,
				Message: fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes),
			})
		}
		return "", fmt.Errorf("account_service_hash_failed: %w", err)
	}
	return hash, nil
}

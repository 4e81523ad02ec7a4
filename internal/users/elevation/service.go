// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package elevation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/notify"
	"github.com/taibuivan/quillpad/internal/platform/sec"
	"github.com/taibuivan/quillpad/internal/platform/validate"
	"github.com/taibuivan/quillpad/internal/users/account"
	"github.com/taibuivan/quillpad/pkg/uuid"
)

// Field names used in validation details.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldStatus   = "status"
	maxNameLength = 100
)

// Service implements the request lifecycle.
type Service struct {
	repository   Repository
	publisher    notify.Publisher
	reviewerMail string
}

/*
NewService constructs a new elevation [Service].

Parameters:
  - repository: Repository
  - publisher: notify.Publisher (nil discards notifications)
  - reviewerMail: address notified of new submissions, usually the superadmin
*/
func NewService(repository Repository, publisher notify.Publisher, reviewerMail string) *Service {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &Service{
		repository:   repository,
		publisher:    publisher,
		reviewerMail: reviewerMail,
	}
}

// # Submission

// SubmitInput holds the data of a new admin request.
type SubmitInput struct {
	Name     string
	Email    string
	Password string
}

/*
Submit validates and stores a new pending request.

The password is hashed here and never stored or logged in plain text.

Returns:
  - *Request: The pending request
  - error: ValidationError on empty fields, Conflict on a held email
*/
func (service *Service) Submit(context context.Context, input SubmitInput) (*Request, error) {
	email := account.NormalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, maxNameLength).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, sec.ErrPasswordTooLong) {
			return nil, validate.RequiredError(FieldPassword, fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes))
		}
		return nil, fmt.Errorf("elevation_service_hash_failed: %w", err)
	}

	request := &Request{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Status:       StatusPending,
	}

	if err := service.repository.Create(context, request); err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("elevation_service_submit_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "elevation_request_submitted",
		slog.String("request_id", request.ID),
	)

	if service.reviewerMail != "" {
		service.publisher.Publish(notify.Message{
			Kind:    notify.KindRequestSubmitted,
			To:      service.reviewerMail,
			Subject: "New admin request",
			Body:    fmt.Sprintf("%s <%s> has requested admin access.", request.Name, request.Email),
		})
	}

	return request, nil
}

// # Review

// List returns every request, newest first, for a caller allowed to review them.
func (service *Service) List(context context.Context, actor access.Actor) ([]*Request, error) {
	if err := access.Require(access.CanManageRequests(actor.Role), "Only the superadmin can view admin requests"); err != nil {
		return nil, err
	}

	requests, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("elevation_service_list_failed: %w", err)
	}
	return requests, nil
}

/*
Resolve accepts or rejects a pending request.

The decision is applied once: a second call for the same request, whatever
its decision, fails with InvalidState and creates nothing. The notification
is published only after the transition has committed.

Returns:
  - *Request: The resolved request
  - error: Forbidden, ValidationError, NotFound or InvalidState
*/
func (service *Service) Resolve(context context.Context, actor access.Actor, requestID, rawDecision string) (*Request, error) {
	if err := access.Require(access.CanManageRequests(actor.Role), "Only the superadmin can resolve admin requests"); err != nil {
		return nil, err
	}

	decision, ok := ParseDecision(rawDecision)
	if !ok {
		return nil, validate.RequiredError(FieldStatus, "Must be one of: accepted, rejected")
	}

	if !uuid.Valid(requestID) {
		return nil, apperr.NotFound("Admin request")
	}

	request, created, err := service.repository.Resolve(context, Resolution{
		RequestID:  requestID,
		Decision:   decision,
		ResolvedBy: actor.ID,
		AccountID:  uuid.New(),
	})
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("elevation_service_resolve_failed: %w", err)
	}

	attrs := []any{
		slog.String("request_id", request.ID),
		slog.String("status", string(request.Status)),
		slog.String("actor_id", actor.ID),
	}
	if created != nil {
		attrs = append(attrs, slog.String("account_id", created.ID))
	}
	ctxutil.GetLogger(context).InfoContext(context, "elevation_request_resolved", attrs...)

	service.publisher.Publish(resolutionMessage(request))

	return request, nil
}

func resolutionMessage(request *Request) notify.Message {
	if request.Status == StatusAccepted {
		return notify.Message{
			Kind:    notify.KindRequestAccepted,
			To:      request.Email,
			Subject: "Your admin request was accepted",
			Body:    fmt.Sprintf("Hello %s, your admin account is ready. Sign in with the password you chose when applying.", request.Name),
		}
	}

	return notify.Message{
		Kind:    notify.KindRequestRejected,
		To:      request.Email,
		Subject: "Your admin request was rejected",
		Body:    fmt.Sprintf("Hello %s, your admin request was not approved. You can still register as a writer.", request.Name),
	}
}

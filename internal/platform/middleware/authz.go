// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/respond"
	"github.com/taibuivan/quillpad/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// SessionChecker reports whether a token issued at issuedAt predates the
// last role change of the account, in which case its role claim is stale.
type SessionChecker interface {
	IsStale(ctx context.Context, accountID string, issuedAt time.Time) (bool, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Reject tokens whose role claim was superseded by a role change.
//  5. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// checker may be nil, in which case tokens are trusted until they expire.
func Authenticate(verifier TokenVerifier, checker SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			if checker != nil {
				stale, err := checker.IsStale(request.Context(), claims.UserID, claims.IssuedAtTime())
				if err != nil {
					ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "session_check_failed",
						slog.String("user_id", claims.UserID),
						slog.Any("error", err),
					)
					respond.Error(writer, request, apperr.ServiceUnavailable("Session store unavailable"))
					return
				}
				if stale {
					respond.Error(writer, request, apperr.Unauthorized("Session expired after role change, please log in again"))
					return
				}
			}

			ctx := ctxutil.WithClaims(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, ok := ctxutil.GetActor(request.Context()); !ok {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// Require blocks requests whose actor role is denied by guard, one of the
// decision functions of package access.
//
// It implies [RequireAuth]: anonymous requests get 401, denied roles get 403.
func Require(guard func(sec.UserRole) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor, ok := ctxutil.GetActor(request.Context())
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !guard(actor.Role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

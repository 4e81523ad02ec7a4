// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/admin"
	"github.com/taibuivan/quillpad/internal/api"
	"github.com/taibuivan/quillpad/internal/content/blog"
	"github.com/taibuivan/quillpad/internal/content/comment"
	"github.com/taibuivan/quillpad/internal/content/guideline"
	"github.com/taibuivan/quillpad/internal/content/tag"
	"github.com/taibuivan/quillpad/internal/media"
	"github.com/taibuivan/quillpad/internal/platform/sec"
	"github.com/taibuivan/quillpad/internal/users/account"
	"github.com/taibuivan/quillpad/internal/users/auth"
	"github.com/taibuivan/quillpad/internal/users/elevation"
)

type devConfig struct{}

func (devConfig) IsDevelopment() bool  { return true }
func (devConfig) OriginSuffix() string { return "quillpad.app" }

// newRouter wires every handler over nil stores; the tests below only reach
// middleware and infrastructure routes.
func newRouter(t *testing.T, checks ...api.HealthCheck) (http.Handler, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "quillpad.test", time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	accounts := account.NewService(nil, nil)
	posts := blog.NewService(nil)
	requests := elevation.NewService(nil, nil, "")

	handlers := api.Handlers{
		Auth:      auth.NewHandler(auth.NewService(accounts, requests, tokens)),
		Account:   account.NewHandler(accounts, posts),
		Elevation: elevation.NewHandler(requests),
		Blog:      blog.NewHandler(posts),
		Comment:   comment.NewHandler(comment.NewService(nil)),
		Tag:       tag.NewHandler(tag.NewService(nil)),
		Guideline: guideline.NewHandler(guideline.NewService(nil)),
		Admin:     admin.NewHandler(admin.NewService(nil)),
		Media:     media.NewHandler(media.NewService(nil)),
	}
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(logger, checks...)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return api.NewRouter(ctx, devConfig{}, logger, api.Security{Verifier: tokens}, handlers), tokens
}

func get(router http.Handler, path, token string) int {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder.Code
}

/*
TestRouter_RoleGates checks that the privileged route groups refuse callers
below their role before any store is touched.
*/
func TestRouter_RoleGates(t *testing.T) {
	router, tokens := newRouter(t)

	standard, _, err := tokens.GenerateAccessToken("u-1", sec.RoleStandard)
	require.NoError(t, err)
	elevated, _, err := tokens.GenerateAccessToken("u-2", sec.RoleElevated)
	require.NoError(t, err)

	tests := []struct {
		path   string
		token  string
		status int
	}{
		{"/api/superadmin/users", "", http.StatusUnauthorized},
		{"/api/superadmin/users", standard, http.StatusForbidden},
		{"/api/superadmin/users", elevated, http.StatusForbidden},
		{"/api/superadmin/reported", standard, http.StatusForbidden},
		{"/api/admin-requests", elevated, http.StatusForbidden},
		{"/api/admin/stats", standard, http.StatusForbidden},
		{"/api/users/me", "", http.StatusUnauthorized},
		{"/api/blogs", "not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.status, get(router, tt.path, tt.token))
		})
	}
}

/*
TestRouter_Health reports liveness always and readiness per dependency.
*/
func TestRouter_Health(t *testing.T) {
	healthy, _ := newRouter(t, api.HealthCheck{Name: "postgres", Check: func(context.Context) error { return nil }})
	assert.Equal(t, http.StatusOK, get(healthy, "/health", ""))
	assert.Equal(t, http.StatusOK, get(healthy, "/ready", ""))

	degraded, _ := newRouter(t, api.HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("down") }})
	assert.Equal(t, http.StatusOK, get(degraded, "/health", ""))
	assert.Equal(t, http.StatusServiceUnavailable, get(degraded, "/ready", ""))
}

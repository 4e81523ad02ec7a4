// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/content/blog"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	"github.com/taibuivan/quillpad/internal/platform/sec"
)

func newRouter(t *testing.T) (http.Handler, *blog.Service, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewTokenService("0123456789abcdef0123456789abcdef", "quillpad.test", time.Hour)
	require.NoError(t, err)

	service, _ := newService()
	handler := blog.NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens, nil))
	router.Route("/api", func(r chi.Router) {
		r.Mount("/blogs", handler.Routes())
		r.Route("/superadmin", handler.RegisterModerationRoutes)
	})

	return router, service, tokens
}

func bearer(t *testing.T, tokens *sec.TokenService, userID string, role sec.UserRole) string {
	t.Helper()
	token, _, err := tokens.GenerateAccessToken(userID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(router http.Handler, method, path, authorization, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestReportedRoute_RoleGate verifies an elevated account can read reports while a
standard one gets 403 and an anonymous caller 401.
*/
func TestReportedRoute_RoleGate(t *testing.T) {
	router, service, tokens := newRouter(t)

	post := mustCreate(t, service, ann, "Flagged", tagGo.ID)
	_, err := service.Report(context.Background(), bob, post.ID, "spam")
	require.NoError(t, err)

	recorder := do(router, http.MethodGet, "/api/superadmin/reported", bearer(t, tokens, "adm", sec.RoleElevated), "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []struct {
			ID      string `json:"id"`
			Reports []struct {
				Reason string `json:"reason"`
			} `json:"reports"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, post.ID, envelope.Data[0].ID)
	assert.Equal(t, "spam", envelope.Data[0].Reports[0].Reason)

	assert.Equal(t, http.StatusOK,
		do(router, http.MethodGet, "/api/superadmin/reported", bearer(t, tokens, "boss", sec.RoleSupreme), "").Code)
	assert.Equal(t, http.StatusForbidden,
		do(router, http.MethodGet, "/api/superadmin/reported", bearer(t, tokens, "ann", sec.RoleStandard), "").Code)
	assert.Equal(t, http.StatusUnauthorized,
		do(router, http.MethodGet, "/api/superadmin/reported", "", "").Code)
}

/*
TestBlogRoutes_PublicReadAuthenticatedWrite verifies reads are open and writes need a token.
*/
func TestBlogRoutes_PublicReadAuthenticatedWrite(t *testing.T) {
	router, service, tokens := newRouter(t)
	post := mustCreate(t, service, ann, "Open", tagGo.ID)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/blogs?tags=go", "", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/blogs/"+post.ID, "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPut, "/api/blogs/"+post.ID+"/like", "", "").Code)

	body := `{"title":"New","content":"x","tags":["` + tagGo.ID + `"]}`
	assert.Equal(t, http.StatusUnauthorized, do(router, http.MethodPost, "/api/blogs", "", body).Code)
	assert.Equal(t, http.StatusCreated,
		do(router, http.MethodPost, "/api/blogs", bearer(t, tokens, "bob", sec.RoleStandard), body).Code)

	assert.Equal(t, http.StatusForbidden,
		do(router, http.MethodDelete, "/api/blogs/"+post.ID, bearer(t, tokens, "bob", sec.RoleStandard), "").Code)
	assert.Equal(t, http.StatusCreated,
		do(router, http.MethodPut, "/api/blogs/report/"+post.ID, bearer(t, tokens, "bob", sec.RoleStandard), `{"reason":"spam"}`).Code)
}

// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/ctxutil"
	"github.com/taibuivan/quillpad/internal/platform/middleware"
	"github.com/taibuivan/quillpad/internal/platform/sec"
)

// # Fakes

type stubVerifier struct {
	claims map[string]*sec.AuthClaims
}

func (verifier stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	claims, ok := verifier.claims[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return claims, nil
}

type stubChecker struct {
	stale bool
	err   error
}

func (checker stubChecker) IsStale(context.Context, string, time.Time) (bool, error) {
	return checker.stale, checker.err
}

type stubConfig struct {
	development bool
}

func (config stubConfig) IsDevelopment() bool  { return config.development }
func (config stubConfig) OriginSuffix() string { return "quillpad.app" }

func newVerifier() stubVerifier {
	return stubVerifier{claims: map[string]*sec.AuthClaims{
		"standard": {UserID: "u-1", Role: string(sec.RoleStandard)},
		"elevated": {UserID: "u-2", Role: string(sec.RoleElevated)},
		"supreme":  {UserID: "u-3", Role: string(sec.RoleSupreme)},
	}}
}

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func serve(handler http.Handler, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/api/superadmin/reported", nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequire_Moderate verifies that moderation routes admit elevated and supreme only.
*/
func TestRequire_Moderate(t *testing.T) {
	handler := middleware.Authenticate(newVerifier(), nil)(middleware.Require(access.CanModerate)(okHandler))

	tests := []struct {
		token  string
		status int
	}{
		{"elevated", http.StatusOK},
		{"supreme", http.StatusOK},
		{"standard", http.StatusForbidden},
		{"", http.StatusUnauthorized},
		{"forged", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.status, serve(handler, tt.token).Code)
		})
	}
}

/*
TestAuthenticate_Anonymous lets requests without a header through with no actor.
*/
func TestAuthenticate_Anonymous(t *testing.T) {
	var sawActor bool
	handler := middleware.Authenticate(newVerifier(), nil)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, sawActor = ctxutil.GetActor(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, serve(handler, "").Code)
	assert.False(t, sawActor)
}

/*
TestAuthenticate_BadScheme rejects non-bearer authorization headers.
*/
func TestAuthenticate_BadScheme(t *testing.T) {
	handler := middleware.Authenticate(newVerifier(), nil)(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_StaleSession rejects tokens issued before a role change.
*/
func TestAuthenticate_StaleSession(t *testing.T) {
	stale := middleware.Authenticate(newVerifier(), stubChecker{stale: true})(okHandler)
	assert.Equal(t, http.StatusUnauthorized, serve(stale, "elevated").Code)

	broken := middleware.Authenticate(newVerifier(), stubChecker{err: errors.New("redis down")})(okHandler)
	assert.Equal(t, http.StatusServiceUnavailable, serve(broken, "elevated").Code)

	fresh := middleware.Authenticate(newVerifier(), stubChecker{})(okHandler)
	assert.Equal(t, http.StatusOK, serve(fresh, "elevated").Code)
}

/*
TestRequireAuth blocks anonymous requests.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.Authenticate(newVerifier(), nil)(middleware.RequireAuth(okHandler))

	assert.Equal(t, http.StatusUnauthorized, serve(handler, "").Code)
	assert.Equal(t, http.StatusOK, serve(handler, "standard").Code)
}

/*
TestCORS checks origin matching on a label boundary outside development.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(stubConfig{})(okHandler)

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://quillpad.app", true},
		{"https://www.quillpad.app", true},
		{"http://admin.quillpad.app:3000", true},
		{"https://evilquillpad.app", false},
		{"https://quillpad.app.evil.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestRateLimit rejects requests beyond the burst with 429.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(okHandler)

	assert.Equal(t, http.StatusOK, serve(handler, "").Code)
	assert.Equal(t, http.StatusOK, serve(handler, "").Code)

	limited := serve(handler, "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
}

/*
TestPanicRecovery turns a panic into a 500 response.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	assert.Equal(t, http.StatusInternalServerError, serve(handler, "").Code)
}

/*
TestRequestID echoes a client ID or generates one.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "abc")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", recorder.Header().Get("X-Request-ID"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
}

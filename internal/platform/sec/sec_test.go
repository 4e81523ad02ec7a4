// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

/*
TestParseRole verifies that only the three known wire values are accepted.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"user", true},
		{"admin", true},
		{"superadmin", true},
		{"Admin", false},
		{"moderator", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			role, ok := sec.ParseRole(tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, sec.UserRole(tt.raw), role)
		})
	}
}

/*
TestUserRole_Assignable verifies that supreme can never be granted.
*/
func TestUserRole_Assignable(t *testing.T) {
	assert.True(t, sec.RoleStandard.Assignable())
	assert.True(t, sec.RoleElevated.Assignable())
	assert.False(t, sec.RoleSupreme.Assignable())
	assert.False(t, sec.UserRole("root").Assignable())
}

/*
TestTokenService_RoundTrip issues a token and verifies it carries the account ID and role.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "quillpad.test", 7*24*time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := service.GenerateAccessToken("acc-1", sec.RoleElevated)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.UserID)
	assert.Equal(t, sec.RoleElevated, claims.ActorRole())
	assert.False(t, claims.IssuedAtTime().IsZero())
}

/*
TestTokenService_Rejects covers tampered, foreign and expired tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	service, err := sec.NewTokenService(testSecret, "quillpad.test", time.Hour)
	require.NoError(t, err)

	t.Run("tampered", func(t *testing.T) {
		token, _, err := service.GenerateAccessToken("acc-1", sec.RoleStandard)
		require.NoError(t, err)

		_, err = service.VerifyToken(token[:len(token)-2] + "xx")
		assert.Error(t, err)
	})

	t.Run("other_secret", func(t *testing.T) {
		other, err := sec.NewTokenService(strings.Repeat("z", 32), "quillpad.test", time.Hour)
		require.NoError(t, err)
		token, _, err := other.GenerateAccessToken("acc-1", sec.RoleSupreme)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := sec.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "quillpad.test",
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
			UserID: "acc-1",
			Role:   string(sec.RoleStandard),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyToken("not-a-token")
		assert.Error(t, err)
	})
}

/*
TestNewTokenService_ShortSecret guards against weak signing keys.
*/
func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := sec.NewTokenService("short", "quillpad.test", time.Hour)
	assert.Error(t, err)
}

/*
TestPasswordHash verifies hashing, verification and the bcrypt length limit.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse", hash))
	assert.False(t, sec.CheckPasswordHash("wrong horse", hash))

	_, err = sec.HashPassword(strings.Repeat("a", sec.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}

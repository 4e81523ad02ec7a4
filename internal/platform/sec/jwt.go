// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the TokenProvider interfaces declared by consumers.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLength is the shortest HMAC secret accepted at startup.
const minSecretLength = 32

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// The account ID and role travel inside the token so that
// [middleware.Authenticate] can rebuild the actor without a database lookup.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
	Role   string `json:"rol"`
}

// ActorRole returns the role carried by the token. Unknown values are
// returned as-is and fail every access check.
func (claims *AuthClaims) ActorRole() UserRole {
	return UserRole(claims.Role)
}

// IssuedAtTime returns the iat claim, or the zero time when absent.
func (claims *AuthClaims) IssuedAtTime() time.Time {
	if claims.IssuedAt == nil {
		return time.Time{}
	}
	return claims.IssuedAt.Time
}

// TokenService handles generation and verification of HS256 JWT tokens.
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
}

// NewTokenService creates a new TokenService signing with the given server secret.
func NewTokenService(secret, issuer string, timeToLive time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("auth: jwt secret must be at least %d bytes", minSecretLength)
	}
	if timeToLive <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		timeToLive: timeToLive,
	}, nil
}

// GenerateAccessToken creates a new signed JWT for an account.
// It returns the token and its expiry.
func (service *TokenService) GenerateAccessToken(userID string, role UserRole) (string, time.Time, error) {
	currentTime := time.Now()
	expiresAt := currentTime.Add(service.timeToLive)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Role:   string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// VerifyToken checks the signature, issuer and expiry of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithIssuer(service.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token claims")
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("auth: token has no subject")
	}

	return claims, nil
}

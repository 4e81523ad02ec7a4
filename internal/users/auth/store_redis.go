// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/quillpad/internal/platform/constants"
)

// RoleStampRepository records the time of each account's last role change.
//
// A token whose issued-at precedes the stamp carries a stale role claim and
// is rejected by the auth middleware. Stamps live as long as a token does,
// after which every older token has expired anyway.
type RoleStampRepository struct {
	client   *redis.Client
	tokenTTL time.Duration
}

// NewRoleStampRepository creates a Redis-backed role stamp store.
func NewRoleStampRepository(client *redis.Client, tokenTTL time.Duration) *RoleStampRepository {
	return &RoleStampRepository{client: client, tokenTTL: tokenTTL}
}

func roleStampKey(accountID string) string {
	return constants.RedisPrefixRoleStamp + accountID
}

/*
Revoke stamps the account with the second after the current time.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - error: Redis failures
*/
func (repository *RoleStampRepository) Revoke(context context.Context, accountID string) error {
	stamp := strconv.FormatInt(stampFor(time.Now()), 10)

	if err := repository.client.Set(context, roleStampKey(accountID), stamp, repository.tokenTTL).Err(); err != nil {
		return fmt.Errorf("redis_role_stamp_set_failed: %w", err)
	}

	return nil
}

/*
IsStale reports whether a token issued at issuedAt predates the account's
last role change.

Returns:
  - bool: true if the token must be rejected
  - error: Redis failures
*/
func (repository *RoleStampRepository) IsStale(context context.Context, accountID string, issuedAt time.Time) (bool, error) {
	raw, err := repository.client.Get(context, roleStampKey(accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_role_stamp_get_failed: %w", err)
	}

	stamp, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("redis_role_stamp_parse_failed: %w", err)
	}

	return issuedBefore(issuedAt, stamp), nil
}

// stampFor rounds a role change up to the next whole second. The JWT iat
// claim has second precision, so every token issued in the second of the
// change is rejected; logins wait at most one second for a fresh token.
func stampFor(changedAt time.Time) int64 {
	return changedAt.Unix() + 1
}

// issuedBefore compares at second precision, the resolution of the JWT iat
// claim.
func issuedBefore(issuedAt time.Time, stampUnix int64) bool {
	return issuedAt.Unix() < stampUnix
}

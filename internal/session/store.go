// Package session implements the server-side session store backing the login
// cookie. Sessions live in Redis under an opaque random token, so logout (or
// TTL expiry) invalidates them immediately across all server instances.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the HTTP cookie carrying the session token.
const CookieName = "sesion"

const keyPrefix = "sesion:"

// ErrNoSession is returned when the token is unknown or expired.
var ErrNoSession = errors.New("sesión no encontrada o expirada")

// Store maps opaque tokens to user ids with a sliding TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create mints a fresh token bound to userID.
func (s *Store) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+token, userID.String(), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token to its user id and refreshes the TTL.
func (s *Store) Get(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return uuid.Nil, ErrNoSession
	}
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrNoSession
	}
	// Sliding expiration — best effort
	_ = s.rdb.Expire(ctx, keyPrefix+token, s.ttl).Err()
	return userID, nil
}

// Delete invalidates the token. Deleting an unknown token is a no-op.
func (s *Store) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

// TTL returns the configured session lifetime (used for the cookie Max-Age).
func (s *Store) TTL() time.Duration { return s.ttl }

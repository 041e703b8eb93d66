package auth

import (
	"context"
	"time"

	"authbase/internal/cache"
)

const blacklistKeyPrefix = "blacklist:access_token:"

// BlacklistStore tracks access tokens revoked by logout until they expire on
// their own.
type BlacklistStore interface {
	BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// TokenStore is the Redis-backed blacklist. It inherits the cache wrapper's
// fail-safe behavior: when Redis is unreachable, tokens are honored.
type TokenStore struct {
	cache *cache.Client
}

var _ BlacklistStore = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// BlacklistAccessToken marks a token revoked for its remaining lifetime.
func (s *TokenStore) BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, blacklistKeyPrefix+token, []byte("1"), ttl)
}

// IsAccessTokenBlacklisted reports whether the token was revoked by logout.
func (s *TokenStore) IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	data, err := s.cache.Get(ctx, blacklistKeyPrefix+token)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}

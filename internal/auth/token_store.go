package auth

import (
	"context"
	"encoding/json"
	"time"

	"contactbook/internal/cache"
	"contactbook/internal/model"
)

const sessionKeyPrefix = "session:"

// SessionTTL bounds how long a cached token entry may outlive the database
// row. Login, logout and profile updates evict eagerly; the TTL is a backstop.
const SessionTTL = 30 * time.Minute

// TokenStoreInterface caches token -> user lookups for the authentication
// gate. The users table stays authoritative; every method is best effort.
type TokenStoreInterface interface {
	Save(ctx context.Context, token string, user *model.User) error
	Get(ctx context.Context, token string) (*model.User, error)
	Delete(ctx context.Context, token string) error
}

// TokenStore is the Redis-backed token cache.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Save caches the user snapshot under its session token.
func (s *TokenStore) Save(ctx context.Context, token string, user *model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, sessionKeyPrefix+token, payload, SessionTTL)
}

// Get returns the cached user for a token, or nil on a miss.
func (s *TokenStore) Get(ctx context.Context, token string) (*model.User, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		// treat a corrupt entry as a miss
		return nil, nil
	}
	// the json "-" tags strip these on Save; restore the token so the cached
	// snapshot matches what a database lookup would return
	user.Token = &token
	return &user, nil
}

// Delete evicts a token entry.
func (s *TokenStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}

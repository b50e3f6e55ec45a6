package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"authapp/internal/cache"
)

const (
	oauthStateKeyPrefix = "oauth_state:"
	oauthStateTTL       = 10 * time.Minute
)

// StateStoreInterface persists single-use OAuth state nonces across the
// redirect round trip. The service is stateless, so the nonce lives in Redis
// rather than in a server-side session.
type StateStoreInterface interface {
	Issue(ctx context.Context, provider string) (string, error)
	// Take validates and deletes the state in one step; a replayed state fails.
	Take(ctx context.Context, provider, state string) error
}

// StateStore is the Redis-backed implementation.
type StateStore struct {
	cache *cache.Client
}

var _ StateStoreInterface = (*StateStore)(nil)

// NewStateStore creates a new OAuth state store.
func NewStateStore(cache *cache.Client) *StateStore {
	return &StateStore{cache: cache}
}

// Issue generates an unguessable state nonce and stores it with a short TTL.
func (s *StateStore) Issue(ctx context.Context, provider string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	state := base64.RawURLEncoding.EncodeToString(buf)

	key := oauthStateKeyPrefix + provider + ":" + state
	if err := s.cache.Set(ctx, key, []byte("1"), oauthStateTTL); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}
	return state, nil
}

// Take consumes the state. Unknown, expired, and already-consumed states are
// all rejected; GetDel makes consumption atomic so a replayed callback loses.
func (s *StateStore) Take(ctx context.Context, provider, state string) error {
	if state == "" {
		return fmt.Errorf("missing oauth state")
	}
	key := oauthStateKeyPrefix + provider + ":" + state
	data, err := s.cache.GetDel(ctx, key)
	if err != nil {
		return fmt.Errorf("check state: %w", err)
	}
	if data == nil {
		return fmt.Errorf("unknown or expired oauth state")
	}
	return nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homefinder/internal/cache"
)

const (
	oauthStateKeyPrefix = "oauth_state:"
	// OAuthStateTTL bounds how long a user may take on the provider consent page.
	OAuthStateTTL = 10 * time.Minute
)

// ErrStateNotFound is returned when an OAuth state is unknown, expired or already used.
var ErrStateNotFound = errors.New("oauth state not found")

// StateStoreInterface defines storage for single-use OAuth state nonces.
type StateStoreInterface interface {
	NewState(ctx context.Context) (string, error)
	ConsumeState(ctx context.Context, state string) error
}

// StateStore keeps OAuth state nonces in Redis.
type StateStore struct {
	cache *cache.Client
	ttl   time.Duration
}

// Ensure StateStore implements StateStoreInterface
var _ StateStoreInterface = (*StateStore)(nil)

// NewStateStore creates a new state store.
func NewStateStore(cache *cache.Client) *StateStore {
	return &StateStore{cache: cache, ttl: OAuthStateTTL}
}

// NewState generates a random state and stores it with TTL.
func (s *StateStore) NewState(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.cache.Set(ctx, oauthStateKeyPrefix+state, []byte("1"), s.ttl); err != nil {
		return "", fmt.Errorf("store oauth state: %w", err)
	}
	return state, nil
}

// ConsumeState removes state, failing if it was never issued or already used.
func (s *StateStore) ConsumeState(ctx context.Context, state string) error {
	if state == "" {
		return ErrStateNotFound
	}
	if _, err := s.cache.Take(ctx, oauthStateKeyPrefix+state); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return ErrStateNotFound
		}
		return fmt.Errorf("consume oauth state: %w", err)
	}
	return nil
}

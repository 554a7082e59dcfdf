package buildersession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/aslanbekov/pcforge-backend/internal/builder"
	redisclient "github.com/aslanbekov/pcforge-backend/pkg/redis"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	BuilderSessionKey(userID string) string
}

// Store persists one builder state per user as a JSON blob with TTL.
type Store struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// NewStore builds a Redis-backed builder state store.
func NewStore(client *redisclient.Client, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Store{store: client, keyer: client, ttl: ttl}, nil
}

// Load returns the stored state for the user, or nil when no session exists.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) (*builder.State, error) {
	raw, err := s.store.Get(ctx, s.keyer.BuilderSessionKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var state builder.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decoding builder session: %w", err)
	}
	return &state, nil
}

// Save writes the state back under the user's key, refreshing the TTL.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, state builder.State) error {
	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding builder session: %w", err)
	}
	return s.store.Set(ctx, s.keyer.BuilderSessionKey(userID.String()), string(encoded), s.ttl)
}

// Delete removes the user's session entirely.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.store.Del(ctx, s.keyer.BuilderSessionKey(userID.String()))
}

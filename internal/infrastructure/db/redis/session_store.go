package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// sessionKey is the well-known key holding the single persisted record of
// the whole system: the serialized active identity. Absence of the key
// means no active session.
const sessionKey = "resolvenow:session"

// SessionStore persists the active identity in Redis so it survives a
// process restart.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save serializes the identity under the session key, replacing any
// previous record. Last write wins.
func (s *SessionStore) Save(ctx context.Context, user *domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session save: marshal: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Load returns the persisted identity, or domain.ErrNoActiveSession when
// the key is absent. The record round-trips every User field verbatim.
func (s *SessionStore) Load(ctx context.Context) (*domain.User, error) {
	payload, err := s.client.Get(ctx, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoActiveSession
		}
		return nil, fmt.Errorf("session load: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("session load: unmarshal: %w", err)
	}
	return &user, nil
}

// Clear deletes the session record. Clearing an absent record is a no-op.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

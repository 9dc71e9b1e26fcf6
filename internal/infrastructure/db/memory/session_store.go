package memory

import (
	"context"
	"sync"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// SessionStore holds the single active-identity record in memory. It is the
// fallback when no Redis address is configured; with it, sessions do not
// survive a restart.
type SessionStore struct {
	mu   sync.RWMutex
	user *domain.User
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *user
	s.user = &clone
	return nil
}

func (s *SessionStore) Load(_ context.Context) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil, domain.ErrNoActiveSession
	}
	clone := *s.user
	return &clone, nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// AuthRepository is an in-memory account store backing registration and the
// agent directory.
type AuthRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{}
}

func (r *AuthRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	r.users = append(r.users, &clone)
	out := clone
	return &out, nil
}

func (r *AuthRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *AuthRepository) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

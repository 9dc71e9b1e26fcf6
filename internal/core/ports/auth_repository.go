package ports

import (
	"context"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// AuthRepository defines persistence for registered user accounts.
// Sign-in never reads from it (identity is derived from the email);
// it backs registration and the agent directory.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListByRole returns every user holding the given role, in creation order.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

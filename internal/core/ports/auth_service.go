package ports

import (
	"context"

	"github.com/resolvenow/complaint-system/internal/core/domain"
)

// RegisterInput carries the fields supplied at registration. Role is taken
// verbatim; registration never infers it from the email address.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// AuthService implements the session lifecycle: unauthenticated, then
// authenticated as some role, then unauthenticated again on sign-out.
type AuthService interface {
	// SignIn always succeeds: identity is derived from the email address
	// (role by substring heuristic, display name from the local part) and
	// persisted as the active session.
	SignIn(ctx context.Context, email, password string) (string, *domain.User, error)
	// Register builds the user from the supplied fields, persists it,
	// and signs the user in.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// SignOut clears the persisted session identity.
	SignOut(ctx context.Context) error
	// Restore loads the persisted session identity, or
	// domain.ErrNoActiveSession when none is stored.
	Restore(ctx context.Context) (*domain.User, error)
}

// SessionStore persists exactly one record: the serialized active identity,
// stored under a well-known key. Absence of the record means no active
// session. Save replaces any previous record (last write wins).
type SessionStore interface {
	Save(ctx context.Context, user *domain.User) error
	Load(ctx context.Context) (*domain.User, error)
	Clear(ctx context.Context) error
}

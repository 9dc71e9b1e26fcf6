package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

// mockPhone is the placeholder contact number attached to identities created
// by the credential-free sign-in path.
const mockPhone = "+1234567890"

// AuthService implements the mock session lifecycle. Sign-in performs no
// credential verification: the identity is derived entirely from the email
// address. Registered accounts do get a bcrypt hash stored, so a future
// verifying backend can turn checks on without a data migration.
type AuthService struct {
	users     ports.AuthRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	latency   time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.AuthRepository,
	sessions ports.SessionStore,
	jwtSecret string,
	tokenTTL time.Duration,
	latency time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		latency:   latency,
		logger:    logger,
	}
}

// SignIn derives an identity from the email address (role by substring
// heuristic, name from the local part), persists it as the active session,
// and returns a signed token. The password is accepted but never checked.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := s.simulateLatency(ctx); err != nil {
		return "", nil, err
	}

	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      domain.DisplayNameFromEmail(email),
		Email:     email,
		Role:      domain.RoleFromEmail(email),
		Phone:     mockPhone,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Save(ctx, user); err != nil {
		return "", nil, fmt.Errorf("sign in: persist session: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("signed in")

	return token, user, nil
}

// Register builds the user verbatim from the supplied fields (the role is
// never inferred from the email here), persists the account, and signs the
// user in. There is no duplicate-email check.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	role := domain.Role(input.Role)
	if !role.IsValid() {
		return "", nil, domain.ErrInvalidRole
	}
	if err := s.simulateLatency(ctx); err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		Role:         role,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	if err := s.sessions.Save(ctx, created); err != nil {
		return "", nil, fmt.Errorf("register: persist session: %w", err)
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Msg("registered")

	return token, created, nil
}

// SignOut clears the persisted session identity.
func (s *AuthService) SignOut(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// Restore loads the persisted session identity. Absence of a stored record
// yields domain.ErrNoActiveSession (the unauthenticated state).
func (s *AuthService) Restore(ctx context.Context) (*domain.User, error) {
	return s.sessions.Load(ctx)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.latency):
		return nil
	}
}

package ports

import (
	"context"
	"time"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

// AuthRepository persists user accounts.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RegisterInput carries a new account's details.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
	ClientID string
}

// LoginResult is a signed token plus the account it authenticates.
type LoginResult struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService implements registration, login, and token verification.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Verify parses and validates a signed token, returning the session id
	// (jti) and the identity claims embedded in it.
	Verify(ctx context.Context, token string) (sessionID string, ident *domain.Identity, err error)
}

// SessionRevoker is the remote side of sign-out: a denylist of session ids
// consulted on every request and written to, best-effort, when a session
// ends.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

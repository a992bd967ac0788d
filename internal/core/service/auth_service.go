package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// AuthService implements registration, login, and token verification.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	// Client-family accounts are meaningless without their tenant.
	if in.Role.ClientFamily() && in.ClientID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: string(hash),
		Role:         in.Role,
		ClientID:     in.ClientID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sessionID := newSessionID()
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"jti":       sessionID,
		"sub":       user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"role":      string(user.Role),
		"client_id": user.ClientID,
		"exp":       expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Verify parses a signed token and rebuilds the identity from its claims.
func (s *AuthService) Verify(_ context.Context, token string) (string, *domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", nil, domain.ErrInvalidCredentials
	}

	sessionID, _ := claims["jti"].(string)
	role, _ := claims["role"].(string)
	ident := &domain.Identity{
		ID:       str(claims["sub"]),
		Email:    str(claims["email"]),
		Name:     str(claims["name"]),
		Role:     domain.Role(role),
		ClientID: str(claims["client_id"]),
	}
	if sessionID == "" || !domain.ValidRole(ident.Role) {
		return "", nil, domain.ErrInvalidCredentials
	}
	return sessionID, ident, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// newSessionID returns a random 16-byte hex id used as the token's jti.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))[:32]
	}
	return hex.EncodeToString(b)
}

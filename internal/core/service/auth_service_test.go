package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	byEmail map[string]*domain.User
	seq     int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("user%d", r.seq)
	r.byEmail[clone.Email] = &clone
	out := clone
	return &out, nil
}

const testSecret = "test-secret"

func registeredService(t *testing.T) (*AuthService, *domain.User) {
	t.Helper()
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)
	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "s3cret",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return svc, user
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "ana@example.com",
		Name:     "Ana",
		Password: "s3cret",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.byEmail["ana@example.com"]
	if stored.PasswordHash == "s3cret" {
		t.Error("password must not be stored in the clear")
	}
	if !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", stored.PasswordHash)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := registeredService(t)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "ana@example.com",
		Name:     "Other Ana",
		Password: "different",
		Role:     domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("error = %v, want ErrUserExists", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)
	ctx := context.Background()

	cases := []struct {
		name string
		in   ports.RegisterInput
	}{
		{"missing email", ports.RegisterInput{Password: "x", Role: domain.RoleAdmin}},
		{"missing password", ports.RegisterInput{Email: "a@b.c", Role: domain.RoleAdmin}},
		{"unknown role", ports.RegisterInput{Email: "a@b.c", Password: "x", Role: "superuser"}},
		{"client without tenant", ports.RegisterInput{Email: "a@b.c", Password: "x", Role: domain.RoleClient}},
	}
	for _, c := range cases {
		if _, err := svc.Register(ctx, c.in); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: error = %v, want ErrInvalidCredentials", c.name, err)
		}
	}
}

func TestAuthService_Register_ClientWithTenant(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "client@example.com",
		Password: "x",
		Role:     domain.RoleClientMember,
		ClientID: "c42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ClientID != "c42" {
		t.Errorf("client_id = %q, want c42", user.ClientID)
	}
}

// ---------------------------------------------------------------------------
// Login / Verify
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	svc, user := registeredService(t)

	res, err := svc.Login(context.Background(), "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token == "" {
		t.Error("login must return a token")
	}
	if res.SessionID == "" {
		t.Error("login must return a session id")
	}
	if res.User.ID != user.ID {
		t.Errorf("user id = %q, want %q", res.User.ID, user.ID)
	}
	if !res.ExpiresAt.After(time.Now()) {
		t.Error("expiry must be in the future")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := registeredService(t)

	_, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := registeredService(t)

	_, err := svc.Login(context.Background(), "ghost@example.com", "s3cret")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}
}

func TestAuthService_Login_FreshSessionIDPerLogin(t *testing.T) {
	svc, _ := registeredService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(ctx, "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first.SessionID == second.SessionID {
		t.Error("each login must mint a distinct session id")
	}
}

func TestAuthService_Verify_RoundTrip(t *testing.T) {
	svc, user := registeredService(t)

	res, err := svc.Login(context.Background(), "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	sessionID, ident, err := svc.Verify(context.Background(), res.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sessionID != res.SessionID {
		t.Errorf("session id = %q, want %q", sessionID, res.SessionID)
	}
	if ident.ID != user.ID || ident.Email != user.Email || ident.Role != user.Role {
		t.Errorf("identity = %+v, want projection of %+v", ident, user)
	}
}

func TestAuthService_Verify_RejectsGarbage(t *testing.T) {
	svc, _ := registeredService(t)

	for _, token := range []string{"", "not.a.token", "aaa.bbb.ccc"} {
		if _, _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("token %q: error = %v, want ErrInvalidCredentials", token, err)
		}
	}
}

func TestAuthService_Verify_RejectsForeignSignature(t *testing.T) {
	svc, _ := registeredService(t)

	other := NewAuthService(newStubAuthRepo(), "other-secret", time.Hour)
	if _, err := other.Register(context.Background(), ports.RegisterInput{
		Email: "ana@example.com", Password: "s3cret", Role: domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	res, err := other.Login(context.Background(), "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, _, err := svc.Verify(context.Background(), res.Token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Verify_RejectsExpiredToken(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	claims := jwt.MapClaims{
		"jti":  "sid-1",
		"sub":  "u1",
		"role": string(domain.RoleAdmin),
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

// Claims without a session id or with an unenumerated role are rejected
// even when the signature checks out.
func TestAuthService_Verify_RejectsIncompleteClaims(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing jti", jwt.MapClaims{"sub": "u1", "role": "admin", "exp": exp}},
		{"unknown role", jwt.MapClaims{"jti": "sid-1", "sub": "u1", "role": "superuser", "exp": exp}},
	}
	for _, c := range cases {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c.claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("%s: sign: %v", c.name, err)
		}
		if _, _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: error = %v, want ErrInvalidCredentials", c.name, err)
		}
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apimiddleware "github.com/agencydesk/crm-api/internal/api/middleware"
	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
	"github.com/agencydesk/crm-api/internal/core/session"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Verify(context.Context, string) (string, *domain.Identity, error) {
	return "", nil, errors.New("not implemented")
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "ana@example.com" || in.Role != domain.RoleClient || in.ClientID != "c1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email, Name: in.Name, Role: in.Role, ClientID: in.ClientID}, nil
		},
	}
	h := NewAuthHandler(stub, session.NewManager(zerolog.Nop()))

	body := `{"email":"ana@example.com","name":"Ana","password":"longenough","role":"client","client_id":"c1"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register", body), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "ana@example.com" || resp["role"] != "client" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatal("password hash must not appear in the response")
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, session.NewManager(zerolog.Nop()))

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register", "not-json"), rec)

	err := h.Register(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, session.NewManager(zerolog.Nop()))

	// Password below the minimum, role outside the enum.
	body := `{"email":"ana@example.com","name":"Ana","password":"short","role":"boss"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/register", body), rec)

	err := h.Register(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "ana@example.com" || password != "s3cret-pass" {
				t.Fatalf("unexpected credentials: %s", email)
			}
			return &ports.LoginResult{
				Token:     "signed-token",
				SessionID: "sid-1",
				ExpiresAt: time.Now().Add(time.Hour),
				User:      &domain.User{ID: "u1", Email: email, Role: domain.RoleAdmin},
			}, nil
		},
	}
	h := NewAuthHandler(stub, session.NewManager(zerolog.Nop()))

	body := `{"email":"ana@example.com","password":"s3cret-pass"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", body), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
}

// Unknown accounts and wrong passwords produce the same error, so login
// cannot be used to probe which emails exist.
func TestAuthHandler_Login_UnknownUserIndistinguishable(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, session.NewManager(zerolog.Nop()))

	body := `{"email":"ghost@example.com","password":"whatever"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", body), rec)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthHandler_GetSession(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, session.NewManager(zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(apimiddleware.CtxIdentity, &domain.Identity{ID: "u1", Role: domain.RoleAdmin})

	if err := h.GetSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Identity == nil || resp.Identity.ID != "u1" {
		t.Fatalf("unexpected identity: %+v", resp.Identity)
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	e := newTestEcho()
	manager := session.NewManager(zerolog.Nop())
	store := manager.GetOrCreate("sid-1",
		func(context.Context) (*domain.Identity, error) {
			return &domain.Identity{ID: "u1", Role: domain.RoleAdmin}, nil
		}, nil)
	store.Resolve(context.Background())

	h := NewAuthHandler(&stubAuthService{}, manager)

	req := httptest.NewRequest(http.MethodDelete, "/v1/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(apimiddleware.CtxSessionID, "sid-1")
	c.Set(apimiddleware.CtxSessionStore, store)

	if err := h.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if store.Current() != nil {
		t.Error("identity must be cleared synchronously by sign-out")
	}
	if _, ok := manager.Get("sid-1"); ok {
		t.Error("session must be dropped from the manager")
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/core/access"
	"github.com/agencydesk/crm-api/internal/core/domain"
)

func invoke(t *testing.T, path string, state access.SessionState, req domain.Requirement) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()

	httpReq := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(httpReq, rec)
	c.Set(CtxSessionState, state)

	handlerCalled := false
	h := Require(req)(func(c echo.Context) error {
		handlerCalled = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, handlerCalled
}

func TestRequire_RenderCallsHandler(t *testing.T) {
	state := access.SessionState{Identity: &domain.Identity{ID: "u1", Role: domain.RoleAdmin}}
	rec, called := invoke(t, "/dashboard", state, domain.RequireAdmin)

	if !called {
		t.Fatal("handler must run on a render verdict")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequire_ResolvingReturns503(t *testing.T) {
	rec, called := invoke(t, "/dashboard", access.SessionState{Resolving: true}, domain.RequireAdmin)

	if called {
		t.Fatal("handler must not run while the session resolves")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("503 must carry Retry-After")
	}
}

func TestRequire_NoIdentityReturns401(t *testing.T) {
	rec, called := invoke(t, "/dashboard", access.SessionState{}, domain.RequireAdmin)

	if called {
		t.Fatal("handler must not run without an identity")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != access.PathAuth {
		t.Errorf("Location = %q, want %q", got, access.PathAuth)
	}
}

// A request with no session middleware in front behaves like an
// unauthenticated one: the context carries no state at all.
func TestRequire_MissingStateTreatedAsSignedOut(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Require(domain.RequireAdmin)(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequire_WrongFamilyRedirectsHome(t *testing.T) {
	state := access.SessionState{Identity: &domain.Identity{ID: "u1", Role: domain.RoleClient, ClientID: "c1"}}
	rec, called := invoke(t, "/dashboard", state, domain.RequireAdmin)

	if called {
		t.Fatal("handler must not run for an unsatisfied requirement")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != access.ClientLanding {
		t.Errorf("Location = %q, want %q", got, access.ClientLanding)
	}
}

func TestRequire_ClientAtRootRedirectsToPortal(t *testing.T) {
	state := access.SessionState{Identity: &domain.Identity{ID: "u1", Role: domain.RoleClientMember, ClientID: "c1"}}
	rec, called := invoke(t, "/", state, domain.RequireNone)

	if called {
		t.Fatal("handler must not run for the root override")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != access.ClientLanding {
		t.Errorf("Location = %q, want %q", got, access.ClientLanding)
	}
}

func TestRequire_AdminPassesClientScopedRoute(t *testing.T) {
	state := access.SessionState{Identity: &domain.Identity{ID: "u1", Role: domain.RoleAdmin}}
	_, called := invoke(t, "/portal", state, domain.RequireClient)

	if !called {
		t.Fatal("full admin must pass client-scoped requirements")
	}
}

package access

import (
	"testing"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

func identity(role domain.Role) *domain.Identity {
	id := &domain.Identity{
		ID:    "u1",
		Email: "u1@example.com",
		Name:  "User One",
		Role:  role,
	}
	if role.ClientFamily() {
		id.ClientID = "c1"
	}
	return id
}

func TestEvaluate_ResolvingWinsOverEverything(t *testing.T) {
	// Even with an identity present, an unresolved session must not render.
	states := []SessionState{
		{Resolving: true},
		{Resolving: true, Identity: identity(domain.RoleAdmin)},
	}
	for _, st := range states {
		d := Evaluate(st, "/tasks", domain.RequireAdmin)
		if d.Verdict != ShowLoading {
			t.Errorf("resolving session: verdict = %s, want show_loading", d.Verdict)
		}
		if d.Target != "" {
			t.Errorf("show_loading must carry no target, got %q", d.Target)
		}
	}
}

func TestEvaluate_NoIdentityRedirectsToAuth(t *testing.T) {
	paths := []string{PathRoot, "/tasks", "/portal", "/anything"}
	for _, p := range paths {
		d := Evaluate(SessionState{}, p, domain.RequireNone)
		if d.Verdict != RedirectToAuth {
			t.Errorf("path %q: verdict = %s, want redirect_to_auth", p, d.Verdict)
		}
		if d.Target != PathAuth {
			t.Errorf("path %q: target = %q, want %q", p, d.Target, PathAuth)
		}
	}
}

func TestEvaluate_ClientFamilyAtRootGoesToPortal(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleClient, domain.RoleClientMember} {
		st := SessionState{Identity: identity(role)}
		d := Evaluate(st, PathRoot, domain.RequireNone)
		if d.Verdict != RedirectToHome {
			t.Errorf("%s at root: verdict = %s, want redirect_to_home", role, d.Verdict)
		}
		if d.Target != ClientLanding {
			t.Errorf("%s at root: target = %q, want %q", role, d.Target, ClientLanding)
		}
	}
}

func TestEvaluate_AdminFamilyAtRootRenders(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAdminMember} {
		st := SessionState{Identity: identity(role)}
		d := Evaluate(st, PathRoot, domain.RequireNone)
		if d.Verdict != Render {
			t.Errorf("%s at root: verdict = %s, want render", role, d.Verdict)
		}
	}
}

// The root override only applies to the bare root with no requirement.
// A client hitting a tagged view goes through the ordinary matrix check.
func TestEvaluate_RootOverrideRequiresBareRoot(t *testing.T) {
	st := SessionState{Identity: identity(domain.RoleClient)}

	d := Evaluate(st, "/tickets", domain.RequireNone)
	if d.Verdict != Render {
		t.Errorf("client on /tickets: verdict = %s, want render", d.Verdict)
	}

	d = Evaluate(st, PathRoot, domain.RequireAdmin)
	if d.Verdict != RedirectToHome || d.Target != ClientLanding {
		t.Errorf("client on admin-tagged root: got (%s, %q), want (redirect_to_home, %q)",
			d.Verdict, d.Target, ClientLanding)
	}
}

func TestEvaluate_UnsatisfiedRequirementRedirectsHome(t *testing.T) {
	cases := []struct {
		role   domain.Role
		req    domain.Requirement
		target string
	}{
		{domain.RoleClient, domain.RequireAdmin, ClientLanding},
		{domain.RoleClientMember, domain.RequireAdmin, ClientLanding},
		{domain.RoleClient, domain.RequireClientMember, ClientLanding},
		{domain.RoleAdminMember, domain.RequireClient, AdminLanding},
	}
	for _, c := range cases {
		st := SessionState{Identity: identity(c.role)}
		d := Evaluate(st, "/somewhere", c.req)
		if d.Verdict != RedirectToHome {
			t.Errorf("%s vs %q: verdict = %s, want redirect_to_home", c.role, c.req, d.Verdict)
		}
		if d.Target != c.target {
			t.Errorf("%s vs %q: target = %q, want %q", c.role, c.req, d.Target, c.target)
		}
	}
}

// The full admin role passes every requirement, client-scoped ones included.
func TestEvaluate_AdminRendersEverywhere(t *testing.T) {
	st := SessionState{Identity: identity(domain.RoleAdmin)}
	reqs := []domain.Requirement{
		domain.RequireNone,
		domain.RequireAdmin,
		domain.RequireAdminMember,
		domain.RequireClient,
		domain.RequireClientMember,
	}
	for _, req := range reqs {
		d := Evaluate(st, "/view", req)
		if d.Verdict != Render {
			t.Errorf("admin vs %q: verdict = %s, want render", req, d.Verdict)
		}
	}
}

// A session whose resolution failed carries a nil identity and must be
// routed exactly like an unauthenticated one.
func TestEvaluate_FailedResolutionTreatedAsSignedOut(t *testing.T) {
	st := SessionState{Resolving: false, Identity: nil}
	d := Evaluate(st, "/dashboard", domain.RequireAdmin)
	if d.Verdict != RedirectToAuth || d.Target != PathAuth {
		t.Errorf("got (%s, %q), want (redirect_to_auth, %q)", d.Verdict, d.Target, PathAuth)
	}
}

func TestHomeFor(t *testing.T) {
	cases := []struct {
		role domain.Role
		want string
	}{
		{domain.RoleAdmin, AdminLanding},
		{domain.RoleAdminMember, AdminLanding},
		{domain.RoleClient, ClientLanding},
		{domain.RoleClientMember, ClientLanding},
	}
	for _, c := range cases {
		if got := HomeFor(c.role); got != c.want {
			t.Errorf("HomeFor(%s) = %q, want %q", c.role, got, c.want)
		}
	}
}

func TestVerdict_String(t *testing.T) {
	cases := map[Verdict]string{
		ShowLoading:    "show_loading",
		Render:         "render",
		RedirectToAuth: "redirect_to_auth",
		RedirectToHome: "redirect_to_home",
		Verdict(99):    "unknown",
	}
	for v, want := range cases {
		if got := v.String(); got != want {
			t.Errorf("Verdict(%d).String() = %q, want %q", v, got, want)
		}
	}
}

// Package access decides, for a session and a requested view, whether the
// view may be rendered or where the caller must be redirected instead.
// Decisions are pure routing verdicts: the package never returns errors.
package access

import "github.com/agencydesk/crm-api/internal/core/domain"

// Verdict is the outcome of evaluating a navigation attempt.
type Verdict int

const (
	// ShowLoading means the session is still resolving; protected content
	// must not be rendered yet.
	ShowLoading Verdict = iota
	// Render grants access to the requested view.
	Render
	// RedirectToAuth sends the caller to the sign-in view.
	RedirectToAuth
	// RedirectToHome sends the caller to their role family's landing view.
	RedirectToHome
)

func (v Verdict) String() string {
	switch v {
	case ShowLoading:
		return "show_loading"
	case Render:
		return "render"
	case RedirectToAuth:
		return "redirect_to_auth"
	case RedirectToHome:
		return "redirect_to_home"
	}
	return "unknown"
}

// Well-known paths referenced by routing decisions.
const (
	PathRoot      = "/"
	PathAuth      = "/login"
	AdminLanding  = "/dashboard"
	ClientLanding = "/portal"
)

// SessionState is the access-relevant snapshot of the session store:
// whether the initial resolution is still in flight, and the identity it
// settled on (nil when unauthenticated or resolution failed).
type SessionState struct {
	Resolving bool
	Identity  *domain.Identity
}

// Decision pairs a verdict with its redirect target. Target is empty for
// Render and ShowLoading.
type Decision struct {
	Verdict Verdict
	Target  string
}

// Evaluate applies the routing rules in order, first match wins:
//
//  1. session still resolving → ShowLoading
//  2. no identity → RedirectToAuth
//  3. client-family identity at the bare root with no requirement →
//     RedirectToHome(client landing); the root is the admin dashboard and
//     clients get their portal instead
//  4. requirement not satisfied by the role → RedirectToHome for the role's
//     family landing; the satisfies matrix grants the full admin role
//     access to every requirement, including client-scoped ones
//  5. otherwise → Render
func Evaluate(state SessionState, path string, req domain.Requirement) Decision {
	if state.Resolving {
		return Decision{Verdict: ShowLoading}
	}

	ident := state.Identity
	if ident == nil {
		return Decision{Verdict: RedirectToAuth, Target: PathAuth}
	}

	if ident.Role.ClientFamily() && path == PathRoot && req == domain.RequireNone {
		return Decision{Verdict: RedirectToHome, Target: ClientLanding}
	}

	if !ident.Role.Satisfies(req) {
		return Decision{Verdict: RedirectToHome, Target: HomeFor(ident.Role)}
	}

	return Decision{Verdict: Render}
}

// HomeFor returns the landing path for a role's family.
func HomeFor(r domain.Role) string {
	if r.ClientFamily() {
		return ClientLanding
	}
	return AdminLanding
}

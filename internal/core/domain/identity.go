package domain

// Role identifies which of the four actor variants a session belongs to.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleAdminMember  Role = "admin_member"
	RoleClient       Role = "client"
	RoleClientMember Role = "client_member"
)

// ValidRole reports whether r is one of the four enumerated variants.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleAdminMember, RoleClient, RoleClientMember:
		return true
	}
	return false
}

// AdminFamily reports whether r is admin or admin_member.
func (r Role) AdminFamily() bool {
	return r == RoleAdmin || r == RoleAdminMember
}

// ClientFamily reports whether r is client or client_member.
func (r Role) ClientFamily() bool {
	return r == RoleClient || r == RoleClientMember
}

// Requirement is the declarative access tag attached to a navigable view.
type Requirement string

const (
	RequireNone         Requirement = ""
	RequireAdmin        Requirement = "admin"
	RequireAdminMember  Requirement = "admin:member"
	RequireClient       Requirement = "client"
	RequireClientMember Requirement = "client:member"
)

// satisfies is the role × requirement access matrix. The full admin role
// satisfies every requirement, including client-scoped ones; all other
// roles satisfy only requirements naming their own family or exact variant.
var satisfies = map[Role]map[Requirement]bool{
	RoleAdmin: {
		RequireNone:         true,
		RequireAdmin:        true,
		RequireAdminMember:  true,
		RequireClient:       true,
		RequireClientMember: true,
	},
	RoleAdminMember: {
		RequireNone:        true,
		RequireAdmin:       true,
		RequireAdminMember: true,
	},
	RoleClient: {
		RequireNone:   true,
		RequireClient: true,
	},
	RoleClientMember: {
		RequireNone:         true,
		RequireClient:       true,
		RequireClientMember: true,
	},
}

// Satisfies reports whether an actor with role r may access a view tagged
// with req.
func (r Role) Satisfies(req Requirement) bool {
	return satisfies[r][req]
}

// Identity models the authenticated actor for the current session.
// Client-family identities always carry a non-empty ClientID.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
}

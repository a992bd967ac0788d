// Package navigation owns the ordered list of navigable sections and
// filters it by the viewer's role family.
package navigation

import "github.com/agencydesk/crm-api/internal/core/domain"

// Entry is a single navigable section.
type Entry struct {
	Label     string `json:"label"`
	Path      string `json:"path"`
	Icon      string `json:"icon"`
	AdminOnly bool   `json:"-"`
}

// entries is the fixed, hand-ordered navigation. Admin-only entries are
// hidden from client-family viewers; everything else is shared.
var entries = []Entry{
	{Label: "Dashboard", Path: "/dashboard", Icon: "layout-dashboard", AdminOnly: true},
	{Label: "Clients", Path: "/clients", Icon: "users", AdminOnly: true},
	{Label: "Services", Path: "/services", Icon: "briefcase"},
	{Label: "Orders", Path: "/orders", Icon: "shopping-cart", AdminOnly: true},
	{Label: "Tasks", Path: "/tasks", Icon: "kanban", AdminOnly: true},
	{Label: "Tickets", Path: "/tickets", Icon: "life-buoy"},
	{Label: "Invoices", Path: "/invoices", Icon: "file-text"},
	{Label: "Subscriptions", Path: "/subscriptions", Icon: "repeat"},
	{Label: "Settings", Path: "/settings", Icon: "settings", AdminOnly: true},
}

// VisibleEntries returns the navigation for the given role, in order,
// with admin-only entries removed for non-admin-family roles.
func VisibleEntries(role domain.Role) []Entry {
	if role.AdminFamily() {
		out := make([]Entry, len(entries))
		copy(out, entries)
		return out
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.AdminOnly {
			continue
		}
		out = append(out, e)
	}
	return out
}

package navigation

import (
	"testing"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

func labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func TestVisibleEntries_AdminFamilySeesEverything(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleAdminMember} {
		got := VisibleEntries(role)
		if len(got) != len(entries) {
			t.Errorf("%s: got %d entries, want %d", role, len(got), len(entries))
		}
	}
}

func TestVisibleEntries_ClientFamilyHidesAdminOnly(t *testing.T) {
	want := []string{"Services", "Tickets", "Invoices", "Subscriptions"}
	for _, role := range []domain.Role{domain.RoleClient, domain.RoleClientMember} {
		got := labels(VisibleEntries(role))
		if len(got) != len(want) {
			t.Fatalf("%s: got %v, want %v", role, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: entry %d = %q, want %q", role, i, got[i], want[i])
			}
		}
	}
}

// Shared entries keep their relative order regardless of viewer.
func TestVisibleEntries_PreservesOrder(t *testing.T) {
	adminView := labels(VisibleEntries(domain.RoleAdmin))
	clientView := labels(VisibleEntries(domain.RoleClient))

	pos := make(map[string]int, len(adminView))
	for i, l := range adminView {
		pos[l] = i
	}
	last := -1
	for _, l := range clientView {
		i, ok := pos[l]
		if !ok {
			t.Fatalf("client sees %q which admin does not", l)
		}
		if i < last {
			t.Errorf("entry %q out of order relative to admin view", l)
		}
		last = i
	}
}

// Callers get a copy; mutating the result must not change later calls.
func TestVisibleEntries_ReturnsCopy(t *testing.T) {
	first := VisibleEntries(domain.RoleAdmin)
	first[0].Label = "mutated"

	second := VisibleEntries(domain.RoleAdmin)
	if second[0].Label == "mutated" {
		t.Error("VisibleEntries must return a copy of the entry list")
	}
}

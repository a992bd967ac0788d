package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

func testIdentity() *domain.Identity {
	return &domain.Identity{
		ID:    "u1",
		Email: "u1@example.com",
		Name:  "User One",
		Role:  domain.RoleAdmin,
	}
}

func TestStore_StartsResolving(t *testing.T) {
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		return testIdentity(), nil
	}, nil, discardLogger)

	if !st.IsResolving() {
		t.Error("new store must report resolving")
	}
	if st.Current() != nil {
		t.Error("identity must be nil before resolution")
	}
}

func TestStore_ResolveSettlesIdentity(t *testing.T) {
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		return testIdentity(), nil
	}, nil, discardLogger)

	state := st.Resolve(context.Background())
	if state.Resolving {
		t.Error("state must not be resolving after Resolve")
	}
	if state.Identity == nil || state.Identity.ID != "u1" {
		t.Fatalf("identity = %+v, want u1", state.Identity)
	}
	if st.IsResolving() {
		t.Error("store must not report resolving after Resolve")
	}
}

// The resolver runs once; every later Resolve returns the settled state.
func TestStore_ResolveIsOneShot(t *testing.T) {
	calls := 0
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		calls++
		return testIdentity(), nil
	}, nil, discardLogger)

	st.Resolve(context.Background())
	st.Resolve(context.Background())
	st.Resolve(context.Background())

	if calls != 1 {
		t.Errorf("resolver called %d times, want 1", calls)
	}
}

// A failed resolution settles to a signed-out state with the error kept.
func TestStore_ResolveFailureSettlesSignedOut(t *testing.T) {
	boom := errors.New("user store down")
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		return nil, boom
	}, nil, discardLogger)

	state := st.Resolve(context.Background())
	if state.Resolving {
		t.Error("failed resolution must still settle the store")
	}
	if state.Identity != nil {
		t.Errorf("identity = %+v, want nil", state.Identity)
	}
	if !errors.Is(st.Err(), boom) {
		t.Errorf("Err() = %v, want %v", st.Err(), boom)
	}
}

func TestStore_SignOutClearsSynchronously(t *testing.T) {
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		return testIdentity(), nil
	}, nil, discardLogger)
	st.Resolve(context.Background())

	st.SignOut(context.Background())
	if st.Current() != nil {
		t.Error("identity must be nil immediately after SignOut")
	}
	if st.IsResolving() {
		t.Error("store must stay settled after SignOut")
	}
}

// SignOut must not wait for remote revocation, and a revocation failure
// must not bring the identity back.
func TestStore_SignOutDoesNotBlockOnRevocation(t *testing.T) {
	revokeStarted := make(chan struct{})
	revokeRelease := make(chan struct{})

	st := NewStore(
		func(context.Context) (*domain.Identity, error) { return testIdentity(), nil },
		func(context.Context) error {
			close(revokeStarted)
			<-revokeRelease
			return errors.New("revocation failed")
		},
		discardLogger,
	)
	st.Resolve(context.Background())

	done := make(chan struct{})
	go func() {
		st.SignOut(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SignOut blocked on the revoker")
	}

	<-revokeStarted
	close(revokeRelease)

	if st.Current() != nil {
		t.Error("identity must stay nil regardless of revocation outcome")
	}
}

func TestStore_SubscribersNotifiedOnResolve(t *testing.T) {
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		return testIdentity(), nil
	}, nil, discardLogger)

	var got []State
	st.Subscribe(func(s State) { got = append(got, s) })

	st.Resolve(context.Background())
	if len(got) != 1 {
		t.Fatalf("subscriber called %d times, want 1", len(got))
	}
	if got[0].Identity == nil || got[0].Identity.ID != "u1" {
		t.Errorf("notified state = %+v, want identity u1", got[0])
	}

	st.SignOut(context.Background())
	if len(got) != 2 {
		t.Fatalf("subscriber called %d times after sign-out, want 2", len(got))
	}
	if got[1].Identity != nil {
		t.Errorf("sign-out notification carries identity %+v, want nil", got[1].Identity)
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		return testIdentity(), nil
	}, nil, discardLogger)

	calls := 0
	unsub := st.Subscribe(func(State) { calls++ })
	unsub()

	st.Resolve(context.Background())
	if calls != 0 {
		t.Errorf("unsubscribed callback ran %d times", calls)
	}
}

// A subscriber may unsubscribe itself from within its own callback.
func TestStore_UnsubscribeFromCallback(t *testing.T) {
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		return testIdentity(), nil
	}, nil, discardLogger)

	calls := 0
	var unsub func()
	unsub = st.Subscribe(func(State) {
		calls++
		unsub()
	})

	st.Resolve(context.Background())
	st.SignOut(context.Background())

	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestStore_ConcurrentResolve(t *testing.T) {
	st := NewStore(func(context.Context) (*domain.Identity, error) {
		return testIdentity(), nil
	}, nil, discardLogger)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Resolve(context.Background())
		}()
	}
	wg.Wait()

	if st.Current() == nil {
		t.Error("store must be settled after concurrent Resolve calls")
	}
}

func TestManager_GetOrCreateReusesStore(t *testing.T) {
	m := NewManager(discardLogger)
	resolve := func(context.Context) (*domain.Identity, error) { return testIdentity(), nil }

	a := m.GetOrCreate("sid-1", resolve, nil)
	b := m.GetOrCreate("sid-1", resolve, nil)
	if a != b {
		t.Error("same session id must return the same store")
	}

	c := m.GetOrCreate("sid-2", resolve, nil)
	if c == a {
		t.Error("different session ids must get different stores")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestManager_Remove(t *testing.T) {
	m := NewManager(discardLogger)
	m.GetOrCreate("sid-1", func(context.Context) (*domain.Identity, error) {
		return testIdentity(), nil
	}, nil)

	m.Remove("sid-1")
	if _, ok := m.Get("sid-1"); ok {
		t.Error("store must be gone after Remove")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

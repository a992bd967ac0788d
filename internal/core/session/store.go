// Package session holds the authenticated identity for one session and
// notifies observers when it changes. A Store is the single writer of its
// identity; routing and navigation only ever read it.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/core/domain"
)

// Resolver loads the identity behind a session, once, at first use.
type Resolver func(ctx context.Context) (*domain.Identity, error)

// Revoker invalidates the session remotely. Best-effort: a failure is
// reported but the local sign-out stands.
type Revoker func(ctx context.Context) error

// State is a snapshot of the store, safe to hand to observers.
type State struct {
	Resolving bool
	Identity  *domain.Identity
	Err       error
}

// Store owns the identity for a single session.
type Store struct {
	resolve Resolver
	revoke  Revoker
	log     zerolog.Logger

	mu       sync.Mutex
	resolved bool
	identity *domain.Identity
	err      error
	subs     map[int]func(State)
	nextSub  int
}

// NewStore returns a Store in the resolving state. Nothing is loaded until
// the first Resolve call.
func NewStore(resolve Resolver, revoke Revoker, log zerolog.Logger) *Store {
	return &Store{
		resolve: resolve,
		revoke:  revoke,
		log:     log,
		subs:    make(map[int]func(State)),
	}
}

// Resolve settles the store exactly once. A resolution failure settles the
// store to a nil identity with the error retained; for routing purposes
// that is indistinguishable from not being signed in. Later calls return
// the settled state without touching the resolver again.
func (s *Store) Resolve(ctx context.Context) State {
	s.mu.Lock()
	if s.resolved {
		st := s.stateLocked()
		s.mu.Unlock()
		return st
	}
	s.mu.Unlock()

	ident, err := s.resolve(ctx)

	s.mu.Lock()
	var notify []func(State)
	if !s.resolved {
		s.resolved = true
		if err != nil {
			s.identity = nil
			s.err = err
			s.log.Warn().Err(err).Msg("session resolution failed")
		} else {
			s.identity = ident
		}
		notify = s.subscribersLocked()
	}
	st := s.stateLocked()
	s.mu.Unlock()

	for _, fn := range notify {
		fn(st)
	}
	return st
}

// Current returns the identity, nil until resolution completes or after
// sign-out.
func (s *Store) Current() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// IsResolving is true only until the first resolution settles.
func (s *Store) IsResolving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.resolved
}

// Err returns the retained resolution error, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// SignOut clears the identity synchronously; every read after SignOut
// returns nil. Observers are notified before SignOut returns. The remote
// revocation runs in the background and is not retried on failure.
func (s *Store) SignOut(ctx context.Context) {
	s.mu.Lock()
	s.resolved = true
	s.identity = nil
	s.err = nil
	notify := s.subscribersLocked()
	st := s.stateLocked()
	s.mu.Unlock()

	for _, fn := range notify {
		fn(st)
	}

	if s.revoke == nil {
		return
	}
	go func() {
		if err := s.revoke(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn().Err(err).Msg("remote session revocation failed")
		}
	}()
}

// Subscribe registers fn to be called synchronously on every state change.
// The returned function unsubscribes; it is safe to call from within fn.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// subscribersLocked snapshots the callbacks so they can be invoked without
// holding the lock.
func (s *Store) subscribersLocked() []func(State) {
	out := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}

func (s *Store) stateLocked() State {
	return State{Resolving: !s.resolved, Identity: s.identity, Err: s.err}
}

package session

import (
	"sync"

	"github.com/rs/zerolog"
)

// Manager keys one Store per session id (the token's jti), so repeated
// requests on the same session share a single resolved identity instead of
// hitting the user store every time.
type Manager struct {
	log zerolog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log, stores: make(map[string]*Store)}
}

// GetOrCreate returns the Store for sessionID, creating it with the given
// resolver and revoker on first sight.
func (m *Manager) GetOrCreate(sessionID string, resolve Resolver, revoke Revoker) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[sessionID]; ok {
		return st
	}
	st := NewStore(resolve, revoke, m.log)
	m.stores[sessionID] = st
	return st
}

// Get returns the Store for sessionID if one exists.
func (m *Manager) Get(sessionID string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stores[sessionID]
	return st, ok
}

// Remove drops the Store for sessionID, typically after sign-out.
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}

// Len reports how many sessions are held, for the sessions gauge.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

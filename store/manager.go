package store

import "sync"

// Manager hands out one CartStore per guest session. Sessions live until the
// process restarts; guests that never check out simply evaporate with it.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*CartStore
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*CartStore)}
}

// Get returns the session's store, creating it on first access.
func (m *Manager) Get(sessionID string) *CartStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	cs, ok := m.sessions[sessionID]
	if !ok {
		cs = NewCartStore()
		m.sessions[sessionID] = cs
	}
	return cs
}

// Drop discards a session's store, used after a guest order completes.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

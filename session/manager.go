// session/manager.go
package session

import (
	"sync"

	"github.com/en18031/conformity/catalog"
	conf_errors "github.com/en18031/conformity/errors"
)

// Manager owns the live conceptual assessment sessions. Sessions are
// in-memory only; completing or abandoning one removes it.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a new session under the given id.
func (m *Manager) Create(id, projectID, testCaseID string, tree *catalog.Tree) *Session {
	s := New(id, projectID, testCaseID, tree)
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, conf_errors.ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session, completed or not.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

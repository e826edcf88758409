// internal/service/listening/manager.go

package listening

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"sentilytics/internal/domain/analysis"
	"sentilytics/pkg/logger"
)

// Manager keeps the live analysis sessions
type Manager struct {
	deps   Dependencies
	config SessionConfig
	log    logger.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a new session manager
func NewManager(deps Dependencies, config SessionConfig) *Manager {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	return &Manager{
		deps:     deps,
		config:   config,
		log:      deps.Logger.WithComponent("SessionManager"),
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session. When clientKey is set the last query saved for
// that client becomes the initial query.
func (m *Manager) Create(ctx context.Context, clientKey string) *Session {
	query := ""
	if clientKey != "" && m.deps.Queries != nil {
		q, err := m.deps.Queries.LoadLastQuery(ctx, clientKey)
		if err != nil {
			m.log.Warn("Failed to load last query", "client_key", clientKey, "error", err)
		}
		query = q
	}

	s := NewSession(uuid.New().String(), clientKey, query, m.deps, m.config)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()

	m.log.Info("Session created", "session_id", s.ID(), "client_key", clientKey)
	return s
}

// Get returns the session with the given id
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, analysis.ErrSessionNotFound
	}
	return s, nil
}

// Close ends a session
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return analysis.ErrSessionNotFound
	}
	s.Close()
	m.log.Info("Session closed", "session_id", id)
	return nil
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown closes every session
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

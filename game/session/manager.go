package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wricardo/lavarun/game/engine"
	"github.com/wricardo/lavarun/game/service"
	"github.com/wricardo/lavarun/internal/logging"
)

// MaxSessionIDLength bounds caller-chosen session IDs
const MaxSessionIDLength = 64

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// Manager keeps level sessions in memory, keyed by lower-cased ID
type Manager struct {
	sessions map[string]*service.Session
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.RWMutex
}

// NewManager creates an empty session manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
		logger:   logging.OrNop(logger).Named("session"),
		now:      time.Now,
	}
}

// Create starts a session on config. An empty id gets a generated UUID.
func (m *Manager) Create(id string, config *engine.LevelConfig) (*service.Session, error) {
	if id == "" {
		id = uuid.NewString()
	} else if err := validateID(id); err != nil {
		return nil, err
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; exists {
		return nil, ErrSessionAlreadyExists
	}

	now := m.now()
	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[key] = session

	m.logger.Debug("session stored", zap.String("session", id), zap.String("level", config.Name))
	return session, nil
}

// Get retrieves a session by ID, ignoring case
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// List returns all active sessions, oldest first
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	m.mu.RUnlock()

	sortByCreation(result)
	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, key)
	return nil
}

// UpdateLastAccessed marks a session as used now
func (m *Manager) UpdateLastAccessed(id string) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}

	session.Lock()
	session.LastAccessedAt = m.now()
	session.Unlock()
	return nil
}

func validateID(id string) error {
	if len(id) > MaxSessionIDLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidSessionID, MaxSessionIDLength)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains whitespace", ErrInvalidSessionID, id)
		}
	}
	return nil
}

func sortByCreation(sessions []*service.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
}

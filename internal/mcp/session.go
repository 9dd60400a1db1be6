package mcp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session matches the given ID.
var ErrSessionNotFound = errors.New("session not found")

// Session tracks one connected MCP client between initialize and
// eviction.
type Session struct {
	SessionID  uuid.UUID
	ClientName string
	ClientIP   string
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// SessionStore holds active transport sessions. It is injected into the
// server so transports never depend on module-level mutable state.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID uuid.UUID) (*Session, error)
	Touch(ctx context.Context, sessionID uuid.UUID) error
	Evict(ctx context.Context, sessionID uuid.UUID) error
}

// MemorySessionStore implements SessionStore using in-memory storage.
type MemorySessionStore struct {
	mu sync.RWMutex

	sessions map[uuid.UUID]*Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create stores a new session.
func (s *MemorySessionStore) Create(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *session
	s.sessions[session.SessionID] = &clone
	return nil
}

// Get retrieves a session by ID.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	clone := *session
	return &clone, nil
}

// Touch updates the last-used timestamp for a session.
func (s *MemorySessionStore) Touch(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	session.LastUsedAt = time.Now()
	return nil
}

// Evict removes a session by ID.
func (s *MemorySessionStore) Evict(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return ErrSessionNotFound
	}

	delete(s.sessions, sessionID)
	return nil
}

package booking

import (
	"context"
	"sync"
	"time"

	"github.com/studiobela/salon-scheduler/internal/httperr"
)

// SessionTTL limita a vida de uma sessão abandonada.
const SessionTTL = 30 * time.Minute

type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// ===============================
// In-memory store
// ===============================

// MemoryStore atende instância única e testes; produção usa RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, httperr.ErrBusiness("session_not_found")
	}

	cp := s
	return &cp, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

var _ SessionStore = (*MemoryStore)(nil)

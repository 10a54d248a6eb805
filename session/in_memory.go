// Package session provides session store implementations.
package session

import (
	"sync"

	"github.com/confmesh/confmesh/core"
)

// InMemoryStore is a volatile core.SessionStore keeping sessions in a
// process-local map. It is safe for concurrent access: reads on different
// session ids never block one another, and every returned session is a clone
// so stored state can only change through Save. Entries persist until
// process restart; there is no TTL or capacity bound.
//
// Concurrent requests for the same id race on the load→mutate→save cycle
// with last-writer-wins semantics; callers that need stricter ordering must
// serialize above this layer.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// GetOrCreate returns a clone of the stored session for id, or allocates a
// fresh session (generating an identifier when id is empty) and reports
// created=true.
func (s *InMemoryStore) GetOrCreate(id string) (*core.Session, bool, error) {
	if id != "" {
		s.mu.RLock()
		existing, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			return existing.Clone(), false, nil
		}
	}

	fresh := core.NewSession(id)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock: a concurrent request may have created
	// the same id between the read above and here.
	if id != "" {
		if existing, ok := s.sessions[id]; ok {
			return existing.Clone(), false, nil
		}
	}
	s.sessions[fresh.ID] = fresh.Clone()
	return fresh, true, nil
}

// Save overwrites the stored entry keyed by session id. Last-writer-wins,
// no merge.
func (s *InMemoryStore) Save(sess *core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Len reports the number of stored sessions. Intended for tests and
// introspection.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

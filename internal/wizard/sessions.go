package wizard

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions is the in-memory registry of active wizard sessions.
// One interactive user per session; drafts do not survive restarts.
type Sessions struct {
	mu        sync.RWMutex
	sessions  map[string]*Wizard
	persister Persister
}

func NewSessions(persister Persister) *Sessions {
	return &Sessions{
		sessions:  make(map[string]*Wizard),
		persister: persister,
	}
}

func (s *Sessions) Create() (string, *Wizard) {
	id := uuid.New().String()
	w := New(s.persister)

	s.mu.Lock()
	s.sessions[id] = w
	s.mu.Unlock()

	return id, w
}

func (s *Sessions) Get(id string) (*Wizard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.sessions[id]
	return w, ok
}

func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

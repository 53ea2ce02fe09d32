package server

import (
	"sync"

	"connectn/engine"

	"github.com/google/uuid"
)

// Store keeps every session in memory. Nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: map[string]*Session{},
	}
}

func (s *Store) Create(settings engine.Settings) (*Session, error) {
	manager, err := engine.NewManager(settings)
	if err != nil {
		return nil, err
	}
	session := newSession(uuid.NewString(), manager)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session, nil
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

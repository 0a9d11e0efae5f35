package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/langowen/converter/internal/entities"
)

type Storage struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]entities.Session
}

func NewStorage() *Storage {
	return &Storage{
		sessions: make(map[uuid.UUID]entities.Session),
	}
}

func (s *Storage) GetSession(_ context.Context, id uuid.UUID) (*entities.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	session.Selection.Currencies = append([]string(nil), session.Selection.Currencies...)

	return &session, nil
}

func (s *Storage) SaveSession(_ context.Context, session *entities.Session) error {
	stored := *session
	stored.Selection.Currencies = append([]string(nil), session.Selection.Currencies...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = stored

	return nil
}

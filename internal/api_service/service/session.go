package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
)

// OpenSession returns the session for id. When the session does not exist
// yet this is the visitor's initial load: a new session is created from
// initial, which the caller decodes from the request's query parameters.
func (s *Service) OpenSession(ctx context.Context, id uuid.UUID, initial entities.Selection) (*entities.Session, bool, error) {
	const op = "service.OpenSession"

	if id != uuid.Nil {
		session, err := s.sessions.GetSession(ctx, id)
		if err == nil {
			return session, false, nil
		}
		if !errors.Is(err, entities.ErrNotFound) {
			return nil, false, errors.Wrap(err, op)
		}
	}

	selection := initial.Sanitize(s.cfg.Session.DefaultSource)
	if selection.Amount == 0 {
		selection.Amount = s.cfg.Session.DefaultAmount
	}

	session := entities.NewSession(selection)
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, false, errors.Wrap(err, op)
	}

	return session, true, nil
}

func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*entities.Session, error) {
	const op = "service.GetSession"

	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return session, nil
}

// UpdateSelection stores a new selection for the session, creating the
// session under id when it is unknown.
func (s *Service) UpdateSelection(ctx context.Context, id uuid.UUID, selection entities.Selection) (*entities.Session, error) {
	const op = "service.UpdateSelection"

	session, err := s.sessions.GetSession(ctx, id)
	switch {
	case errors.Is(err, entities.ErrNotFound):
		session = &entities.Session{ID: id, Initialized: true}
	case err != nil:
		return nil, errors.Wrap(err, op)
	}

	session.Selection = selection.Sanitize(s.cfg.Session.DefaultSource)
	session.UpdatedAt = time.Now().UTC()

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return session, nil
}

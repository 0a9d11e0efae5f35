package public

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/langowen/converter/internal/api_service/bridge"
	"github.com/langowen/converter/internal/entities"
)

type sessionResponse struct {
	Session *entities.Session `json:"session"`
	Storage map[string]string `json:"storage"`
	Query   string            `json:"query"`
}

func newSessionResponse(session *entities.Session) sessionResponse {
	return sessionResponse{
		Session: session,
		Storage: bridge.ToStorage(session.Selection),
		Query:   bridge.ToQuery(session.Selection).Encode(),
	}
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := s.sessionID(r)
	if id == uuid.Nil {
		RespondWithError(w, http.StatusNotFound, "no session")
		return
	}

	session, err := s.service.GetSession(ctx, id)
	if errors.Is(err, entities.ErrNotFound) {
		RespondWithError(w, http.StatusNotFound, "no session")
		return
	}
	if err != nil {
		slog.Error("get session failed", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	RespondWithJSON(w, http.StatusOK, newSessionResponse(session))
}

// PutSession stores the posted selection. Fields missing from the body keep
// their current value.
func (s *Server) PutSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := s.sessionID(r)

	selection := entities.Selection{
		Source: s.cfg.Session.DefaultSource,
		Amount: s.cfg.Session.DefaultAmount,
	}
	if id != uuid.Nil {
		if current, err := s.service.GetSession(ctx, id); err == nil {
			selection = current.Selection
		}
	} else {
		id = uuid.New()
	}

	if err := json.NewDecoder(r.Body).Decode(&selection); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid selection", err.Error())
		return
	}

	session, err := s.service.UpdateSelection(ctx, id, selection)
	if err != nil {
		slog.Error("update selection failed", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.setSessionCookie(w, session.ID)

	RespondWithJSON(w, http.StatusOK, newSessionResponse(session))
}

func (s *Server) GetConversion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, _, err := s.bootstrap(w, r)
	if err != nil {
		slog.Error("open session failed", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	RespondWithJSON(w, http.StatusOK, s.service.Convert(ctx, session.Selection))
}

// bootstrap opens the visitor's session. Persisted query parameters seed a
// new session and replace the selection of an existing one; a finite amount
// parameter overrides the stored amount.
func (s *Server) bootstrap(w http.ResponseWriter, r *http.Request) (*entities.Session, bool, error) {
	ctx := r.Context()
	q := r.URL.Query()

	initial := bridge.FromQuery(q, s.cfg.Session.DefaultSource)

	session, created, err := s.service.OpenSession(ctx, s.sessionID(r), initial)
	if err != nil {
		return nil, false, err
	}

	if created {
		s.setSessionCookie(w, session.ID)
	}

	selection := session.Selection
	changed := false

	if !created && bridge.HasParams(q) {
		selection.Source = initial.Source
		selection.Currencies = initial.Currencies
		changed = true
	}

	if raw := q.Get("amount"); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err == nil && !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount != selection.Amount {
			selection.Amount = amount
			changed = true
		}
	}

	if changed {
		session, err = s.service.UpdateSelection(ctx, session.ID, selection)
		if err != nil {
			return nil, false, err
		}
	}

	return session, created, nil
}

func (s *Server) sessionID(r *http.Request) uuid.UUID {
	cookie, err := r.Cookie(s.cfg.Session.CookieName)
	if err != nil {
		return uuid.Nil
	}

	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return uuid.Nil
	}

	return id
}

func (s *Server) setSessionCookie(w http.ResponseWriter, id uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

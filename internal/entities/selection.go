package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const DefaultSource = "USD"

// Selection is what the user picked: the currency converted from, the
// ordered list converted to, and the amount.
type Selection struct {
	Source     string   `json:"source_currency"`
	Currencies []string `json:"currencies"`
	Amount     float64  `json:"amount"`
}

// Sanitize resets invalid input to safe defaults instead of rejecting it.
func (s Selection) Sanitize(defaultSource string) Selection {
	if defaultSource == "" {
		defaultSource = DefaultSource
	}

	s.Source = NormalizeCode(s.Source)
	if s.Source == "" {
		s.Source = NormalizeCode(defaultSource)
	}

	s.Currencies = NormalizeCodes(s.Currencies)

	if s.Amount < 0 || math.IsNaN(s.Amount) || math.IsInf(s.Amount, 0) {
		s.Amount = 0
	}

	return s
}

// Targets returns the selected currencies other than the source, in order.
func (s Selection) Targets() []string {
	targets := make([]string, 0, len(s.Currencies))
	for _, code := range s.Currencies {
		if code != s.Source {
			targets = append(targets, code)
		}
	}

	return targets
}

func (s Selection) SourceInTargets() bool {
	for _, code := range s.Currencies {
		if code == s.Source {
			return true
		}
	}

	return false
}

// Session is the per-visitor state that replaces the browser-only session of
// a single-page app. Initialized is set once the first load has been handled.
type Session struct {
	ID          uuid.UUID `json:"id"`
	Selection   Selection `json:"selection"`
	Initialized bool      `json:"initialized"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewSession(selection Selection) *Session {
	return &Session{
		ID:          uuid.New(),
		Selection:   selection,
		Initialized: true,
		UpdatedAt:   time.Now().UTC(),
	}
}

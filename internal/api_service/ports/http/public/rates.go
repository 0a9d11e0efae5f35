package public

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/langowen/converter/internal/entities"
)

type currenciesResponse struct {
	Currencies entities.Catalog `json:"currencies"`
	Codes      []string         `json:"codes"`
	Warning    string           `json:"warning,omitempty"`
}

func (s *Server) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	catalog, err := s.service.FetchCurrencies(ctx)

	response := currenciesResponse{
		Currencies: catalog,
		Codes:      catalog.Codes(),
	}
	if err != nil {
		response.Warning = "Failed to fetch currencies, showing common currencies only"
	}

	RespondWithJSON(w, http.StatusOK, response)
}

func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	base := r.URL.Query().Get("base")
	if base == "" {
		base = s.cfg.Session.DefaultSource
	}

	var targets []string
	for _, value := range r.URL.Query()["targets"] {
		targets = append(targets, strings.Split(value, ",")...)
	}

	table, err := s.service.ResolveRates(ctx, base, targets)
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusOK, table)
	case errors.Is(err, entities.ErrNoTargets), errors.Is(err, entities.ErrUnsupportedCurrency):
		RespondWithError(w, http.StatusBadRequest, "select at least one target currency other than the base")
	case errors.Is(err, entities.ErrRatesUnavailable):
		slog.Warn("rates unavailable", "base", base, "targets", targets, "error", err)
		RespondWithError(w, http.StatusBadGateway, "Unable to fetch exchange rates. Please try again later.")
	default:
		slog.Error("resolve rates failed", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "internal error")
	}
}

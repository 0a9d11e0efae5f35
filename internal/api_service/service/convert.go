package service

import (
	"context"
	"math"
	"strings"

	"github.com/langowen/converter/internal/entities"
	"github.com/shopspring/decimal"
)

// Convert applies the rates for the selection's targets to its amount and
// reports which display state the caller should render. Codes missing from
// the currency catalog are dropped before any rate is requested.
func (s *Service) Convert(ctx context.Context, selection entities.Selection) *entities.Conversion {
	sel := s.restrict(ctx, selection.Sanitize(s.cfg.Session.DefaultSource))

	conv := &entities.Conversion{
		Source:          sel.Source,
		Amount:          sel.Amount,
		SourceInTargets: sel.SourceInTargets(),
		Lines:           []entities.ConversionLine{},
	}

	if len(sel.Currencies) == 0 {
		conv.State = entities.StateNoTargets
		return conv
	}

	if sel.Amount == 0 {
		conv.State = entities.StateZeroAmount
		return conv
	}

	targets := sel.Targets()
	if len(targets) == 0 {
		conv.State = entities.StateOnlySource
		return conv
	}

	table, err := s.ResolveRates(ctx, sel.Source, targets)
	if err != nil {
		conv.State = entities.StateRatesUnavailable
		conv.Warning = "Unable to fetch exchange rates. Please try again later."
		return conv
	}

	conv.State = entities.StateConverted
	conv.Date = table.Date
	conv.RateSource = table.Source

	var missing []string
	for _, code := range targets {
		line := newLine(code, sel.Amount, table)
		if !line.Available {
			missing = append(missing, code)
		}
		conv.Lines = append(conv.Lines, line)
	}
	if len(missing) > 0 {
		conv.Warning = "No rate available for " + strings.Join(missing, ", ")
	}

	if conv.SourceInTargets {
		line := newLine(sel.Source, sel.Amount, &entities.RateTable{Rates: map[string]float64{sel.Source: 1}})
		line.SameCurrency = true
		conv.Lines = append(conv.Lines, line)
	}

	return conv
}

func newLine(code string, amount float64, table *entities.RateTable) entities.ConversionLine {
	line := entities.ConversionLine{Currency: code}

	rate, ok := table.Rate(code)
	if !ok {
		return line
	}

	converted := amount * rate
	if !finite(rate) || !finite(converted) {
		return line
	}

	line.Rate = &rate
	line.Amount = &converted
	line.Available = true
	line.DisplayRate = decimal.NewFromFloat(rate).StringFixed(ratePlaces(rate))
	line.DisplayAmount = decimal.NewFromFloat(converted).StringFixed(amountPlaces(code))

	return line
}

// restrict keeps the targets the catalog lists and resets an unknown source
// to the configured default.
func (s *Service) restrict(ctx context.Context, sel entities.Selection) entities.Selection {
	// on error the fallback catalog is returned and already logged
	catalog, _ := s.FetchCurrencies(ctx)

	if !catalog.Has(sel.Source) {
		sel.Source = entities.Selection{}.Sanitize(s.cfg.Session.DefaultSource).Source
	}

	known := make([]string, 0, len(sel.Currencies))
	for _, code := range sel.Currencies {
		if catalog.Has(code) {
			known = append(known, code)
		}
	}
	sel.Currencies = known

	return sel
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ratePlaces(rate float64) int32 {
	if rate != 0 && math.Abs(rate) < 0.01 {
		return 8
	}

	return 4
}

func amountPlaces(code string) int32 {
	if code == entities.BTC {
		return 8
	}

	return 2
}

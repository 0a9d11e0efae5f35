package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
)

// ResolveRates builds one rate table for base from the fiat and crypto
// sources. Fiat targets go to the fiat source, BTC goes to the crypto source,
// and the results are merged by key. A failure of one source still yields a
// partial table as long as the other one contributed; when nothing could be
// resolved the error wraps ErrRatesUnavailable.
//
// A fiat base is never requested against itself: the caller renders the 1:1
// line.
func (s *Service) ResolveRates(ctx context.Context, base string, targets []string) (*entities.RateTable, error) {
	const op = "service.ResolveRates"

	base = entities.NormalizeCode(base)
	if base == "" {
		return nil, errors.Wrap(entities.ErrUnsupportedCurrency, op)
	}

	wantBTC, fiatTargets := partition(base, targets)
	if !wantBTC && len(fiatTargets) == 0 {
		return nil, errors.Wrap(entities.ErrNoTargets, op)
	}

	table := entities.NewRateTable(base)
	fromCrypto, fromFiat := false, false

	var errs *multierror.Error

	if base == entities.BTC {
		if len(fiatTargets) > 0 {
			prices, err := s.FetchBTCRates(ctx, fiatTargets)
			if err != nil {
				errs = multierror.Append(errs, err)
			} else if table.Merge(pick(prices, fiatTargets)) > 0 {
				fromCrypto = true
			}
		}

		if wantBTC && (fromCrypto || len(fiatTargets) == 0) {
			table.Rates[entities.BTC] = 1
			fromCrypto = true
		}
	} else {
		if wantBTC {
			rate, err := s.btcPerUnit(ctx, base)
			if err != nil {
				errs = multierror.Append(errs, err)
			} else {
				table.Rates[entities.BTC] = rate
				fromCrypto = true
			}
		}

		if len(fiatTargets) > 0 {
			quote, err := s.FetchFiatRates(ctx, base, fiatTargets)
			if err != nil {
				errs = multierror.Append(errs, err)
			} else if table.Merge(pick(quote.Rates, fiatTargets)) > 0 {
				fromFiat = true
				table.Date = quote.Date
			}
		}
	}

	if table.Len() == 0 {
		resolveOutcomes.WithLabelValues("failed").Inc()

		if cause := errs.ErrorOrNil(); cause != nil {
			return nil, errors.Wrap(fmt.Errorf("%w: %w", entities.ErrRatesUnavailable, cause), op)
		}

		return nil, errors.Wrap(entities.ErrRatesUnavailable, op)
	}

	switch {
	case fromCrypto && fromFiat:
		table.Source = entities.SourceMixed
	case fromFiat:
		table.Source = entities.SourceFiat
	default:
		table.Source = entities.SourceCrypto
	}

	if !fromFiat {
		table.Date = entities.LiveDate
	}

	requested := fiatTargets
	if wantBTC {
		requested = append([]string{entities.BTC}, fiatTargets...)
	}
	for _, code := range requested {
		if _, ok := table.Rates[code]; !ok {
			table.Missing = append(table.Missing, code)
		}
	}

	if errs != nil {
		slog.Warn("partial rate table",
			"op", op,
			"base", base,
			"missing", strings.Join(table.Missing, ","),
			"error", errs.ErrorOrNil(),
		)
	}

	resolveOutcomes.WithLabelValues(string(table.Source)).Inc()

	return table, nil
}

// btcPerUnit returns how many bitcoin one unit of base buys. A non-positive
// upstream price yields 0 rather than a division error.
func (s *Service) btcPerUnit(ctx context.Context, base string) (float64, error) {
	const op = "service.btcPerUnit"

	prices, err := s.FetchBTCRates(ctx, []string{base})
	if err != nil {
		return 0, errors.Wrap(err, op)
	}

	price, ok := prices[base]
	if !ok {
		return 0, errors.Wrapf(entities.ErrUnsupportedCurrency, "%s: no bitcoin price in %s", op, base)
	}

	if price <= 0 {
		return 0, nil
	}

	return 1 / price, nil
}

// partition splits targets into the BTC flag and the fiat codes, dropping a
// fiat base from its own targets.
func partition(base string, targets []string) (bool, []string) {
	wantBTC := false
	fiat := make([]string, 0, len(targets))

	for _, code := range entities.NormalizeCodes(targets) {
		switch code {
		case entities.BTC:
			wantBTC = true
		case base:
		default:
			fiat = append(fiat, code)
		}
	}

	return wantBTC, fiat
}

func pick(rates map[string]float64, codes []string) map[string]float64 {
	result := make(map[string]float64, len(codes))
	for _, code := range codes {
		if rate, ok := rates[code]; ok {
			result[code] = rate
		}
	}

	return result
}

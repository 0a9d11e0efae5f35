package service

import (
	"context"
	"strings"

	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
)

const (
	callFiatRates = "fiat_rates"
	callBTCRates  = "btc_rates"
)

// FetchFiatRates returns the fiat source's dated rates of targets against
// base. BTC is not a fiat code and is ignored in targets.
func (s *Service) FetchFiatRates(ctx context.Context, base string, targets []string) (*entities.FiatQuote, error) {
	const op = "service.FetchFiatRates"

	base = entities.NormalizeCode(base)
	if base == "" || base == entities.BTC {
		return nil, errors.Wrapf(entities.ErrUnsupportedCurrency, "%s: base %q", op, base)
	}

	symbols := withoutBTC(entities.SortedCodes(targets))
	if len(symbols) == 0 {
		return nil, errors.Wrap(entities.ErrNoTargets, op)
	}

	key := memoKey(callFiatRates, base, strings.Join(symbols, ","))

	quote, err := remember(ctx, s.memo, callFiatRates, key, s.cfg.Cache.RatesTTL,
		func(ctx context.Context) (*entities.FiatQuote, error) {
			ctx, cancel := context.WithTimeout(ctx, s.cfg.Upstream.Timeout)
			defer cancel()

			return s.fiat.Latest(ctx, base, symbols)
		})
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return quote, nil
}

// FetchBTCRates returns the price of one bitcoin in each fiat code of vs.
// The source has no publication date; its prices are live.
func (s *Service) FetchBTCRates(ctx context.Context, vs []string) (map[string]float64, error) {
	const op = "service.FetchBTCRates"

	codes := withoutBTC(entities.SortedCodes(vs))
	if len(codes) == 0 {
		return nil, errors.Wrap(entities.ErrNoTargets, op)
	}

	key := memoKey(callBTCRates, strings.Join(codes, ","))

	prices, err := remember(ctx, s.memo, callBTCRates, key, s.cfg.Cache.RatesTTL,
		func(ctx context.Context) (map[string]float64, error) {
			ctx, cancel := context.WithTimeout(ctx, s.cfg.Upstream.Timeout)
			defer cancel()

			return s.crypto.BitcoinPrices(ctx, codes)
		})
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return prices, nil
}

func withoutBTC(codes []string) []string {
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		if code != entities.BTC {
			result = append(result, code)
		}
	}

	return result
}

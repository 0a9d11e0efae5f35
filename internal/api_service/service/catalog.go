package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
)

const callCurrencies = "currencies"

// FetchCurrencies returns the currency catalog with Bitcoin appended. On
// upstream failure it returns the fallback catalog together with an error
// wrapping ErrCatalogUnavailable, so the catalog is always usable.
func (s *Service) FetchCurrencies(ctx context.Context) (entities.Catalog, error) {
	const op = "service.FetchCurrencies"

	catalog, err := remember(ctx, s.memo, callCurrencies, memoKey(callCurrencies), s.cfg.Cache.CatalogTTL,
		func(ctx context.Context) (entities.Catalog, error) {
			ctx, cancel := context.WithTimeout(ctx, s.cfg.Upstream.Timeout)
			defer cancel()

			names, err := s.fiat.Currencies(ctx)
			if err != nil {
				return nil, err
			}

			return entities.NewCatalog(names), nil
		})
	if err != nil {
		slog.Warn("currency list unavailable, serving fallback", "op", op, "error", err)
		return entities.FallbackCatalog(), errors.Wrap(fmt.Errorf("%w: %w", entities.ErrCatalogUnavailable, err), op)
	}

	return catalog, nil
}

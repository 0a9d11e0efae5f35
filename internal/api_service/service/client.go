package service

import (
	"context"

	"github.com/langowen/converter/internal/entities"
)

type FiatClient interface {
	Currencies(ctx context.Context) (map[string]string, error)
	Latest(ctx context.Context, base string, symbols []string) (*entities.FiatQuote, error)
}

type CryptoClient interface {
	BitcoinPrices(ctx context.Context, vs []string) (map[string]float64, error)
}

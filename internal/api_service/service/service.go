package service

import (
	"github.com/langowen/converter/deploy/config"
	"github.com/pkg/errors"
)

type Service struct {
	fiat     FiatClient
	crypto   CryptoClient
	sessions SessionStorage
	memo     *memo
	cfg      *config.Config
}

func NewService(fiat FiatClient, crypto CryptoClient, cache Cache, sessions SessionStorage, cfg *config.Config) (*Service, error) {
	const op = "service.NewService"

	switch {
	case fiat == nil:
		return nil, errors.Errorf("%s: fiat client is required", op)
	case crypto == nil:
		return nil, errors.Errorf("%s: crypto client is required", op)
	case cache == nil:
		return nil, errors.Errorf("%s: cache is required", op)
	case sessions == nil:
		return nil, errors.Errorf("%s: session storage is required", op)
	case cfg == nil:
		return nil, errors.Errorf("%s: config is required", op)
	}

	return &Service{
		fiat:     fiat,
		crypto:   crypto,
		sessions: sessions,
		memo:     newMemo(cache),
		cfg:      cfg,
	}, nil
}

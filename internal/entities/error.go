package entities

import "errors"

var (
	ErrNotFound            = errors.New("entity not found")
	ErrNoTargets           = errors.New("no target currencies to resolve")
	ErrCatalogUnavailable  = errors.New("currency catalog unavailable, using fallback list")
	ErrRatesUnavailable    = errors.New("exchange rates unavailable")
	ErrMalformedResponse   = errors.New("malformed upstream response")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

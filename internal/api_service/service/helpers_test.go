package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/langowen/converter/deploy/config"
	"github.com/langowen/converter/internal/api_service/adapter/cache/memory"
	sessions "github.com/langowen/converter/internal/api_service/adapter/storage/memory"
	"github.com/langowen/converter/internal/api_service/service"
	"github.com/langowen/converter/internal/entities"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

type fakeFiat struct {
	mu sync.Mutex

	names    map[string]string
	namesErr error

	date  string
	rates map[string]float64
	err   error

	// when gate is set, Latest signals entered and blocks until gate closes
	gate    chan struct{}
	entered chan struct{}

	currencyCalls int
	latestCalls   int
	lastBase      string
	lastSymbols   []string
}

func (f *fakeFiat) Currencies(_ context.Context) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.currencyCalls++
	if f.namesErr != nil {
		return nil, f.namesErr
	}

	return f.names, nil
}

func (f *fakeFiat) Latest(ctx context.Context, base string, symbols []string) (*entities.FiatQuote, error) {
	if f.gate != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}

		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.latestCalls++
	f.lastBase = base
	f.lastSymbols = append([]string(nil), symbols...)
	if f.err != nil {
		return nil, f.err
	}

	rates := make(map[string]float64)
	for _, code := range symbols {
		if rate, ok := f.rates[code]; ok {
			rates[code] = rate
		}
	}

	return &entities.FiatQuote{Base: base, Date: f.date, Rates: rates}, nil
}

type fakeCrypto struct {
	mu sync.Mutex

	prices map[string]float64
	err    error

	calls  int
	lastVs []string
}

func (f *fakeCrypto) BitcoinPrices(_ context.Context, vs []string) (map[string]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastVs = append([]string(nil), vs...)
	if f.err != nil {
		return nil, f.err
	}

	prices := make(map[string]float64)
	for _, code := range vs {
		if price, ok := f.prices[code]; ok {
			prices[code] = price
		}
	}

	return prices, nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.Config {
	return &config.Config{
		Upstream: config.Upstream{Timeout: 5 * time.Second},
		Cache: config.Cache{
			Driver:     "memory",
			CatalogTTL: time.Hour,
			RatesTTL:   5 * time.Minute,
		},
		Session: config.Session{
			CookieName:    "converter_session",
			DefaultSource: "USD",
			DefaultAmount: 100,
		},
	}
}

type fixture struct {
	svc    *service.Service
	fiat   *fakeFiat
	crypto *fakeCrypto
	clock  *clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		fiat: &fakeFiat{
			names: map[string]string{"USD": "United States Dollar", "EUR": "Euro", "gbp": "British Pound"},
			date:  "2024-05-10",
			rates: map[string]float64{"EUR": 0.92, "GBP": 0.8, "JPY": 155.2},
		},
		crypto: &fakeCrypto{
			prices: map[string]float64{"USD": 50000, "EUR": 46000, "GBP": 40000},
		},
		clock: &clock{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
	}

	svc, err := service.NewService(f.fiat, f.crypto, memory.NewCacheWithClock(f.clock.Now), sessions.NewStorage(), testConfig())
	require.NoError(t, err)
	f.svc = svc

	return f
}

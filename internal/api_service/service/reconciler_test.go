package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/langowen/converter/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRates_FiatOnly(t *testing.T) {
	f := newFixture(t)

	table, err := f.svc.ResolveRates(context.Background(), "usd", []string{"EUR", "gbp"})
	require.NoError(t, err)

	assert.Equal(t, 0, f.crypto.calls)
	assert.Equal(t, 1, f.fiat.latestCalls)
	assert.Equal(t, "USD", f.fiat.lastBase)
	assert.Equal(t, []string{"EUR", "GBP"}, f.fiat.lastSymbols)

	assert.Equal(t, entities.SourceFiat, table.Source)
	assert.Equal(t, "2024-05-10", table.Date)
	assert.Equal(t, map[string]float64{"EUR": 0.92, "GBP": 0.8}, table.Rates)
	assert.Empty(t, table.Missing)
}

func TestResolveRates_BTCTargetIsInverted(t *testing.T) {
	f := newFixture(t)

	table, err := f.svc.ResolveRates(context.Background(), "USD", []string{"BTC"})
	require.NoError(t, err)

	assert.Equal(t, 0, f.fiat.latestCalls)
	assert.Equal(t, 1, f.crypto.calls)
	assert.Equal(t, []string{"USD"}, f.crypto.lastVs)

	rate, ok := table.Rate("BTC")
	require.True(t, ok)
	assert.InDelta(t, 1.0/50000, rate, 1e-15)
	assert.Equal(t, entities.SourceCrypto, table.Source)
	assert.Equal(t, entities.LiveDate, table.Date)
}

func TestResolveRates_BTCBase(t *testing.T) {
	f := newFixture(t)

	table, err := f.svc.ResolveRates(context.Background(), "BTC", []string{"EUR", "BTC"})
	require.NoError(t, err)

	assert.Equal(t, 0, f.fiat.latestCalls)
	assert.Equal(t, 1, f.crypto.calls)
	assert.Equal(t, []string{"EUR"}, f.crypto.lastVs)

	assert.Equal(t, map[string]float64{"EUR": 46000, "BTC": 1.0}, table.Rates)
	assert.Equal(t, entities.SourceCrypto, table.Source)
	assert.Equal(t, entities.LiveDate, table.Date)
}

func TestResolveRates_BTCBaseBatchesFiatTargets(t *testing.T) {
	f := newFixture(t)

	table, err := f.svc.ResolveRates(context.Background(), "BTC", []string{"USD", "GBP", "EUR"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.crypto.calls)
	assert.Equal(t, []string{"EUR", "GBP", "USD"}, f.crypto.lastVs)
	assert.Len(t, table.Rates, 3)
}

func TestResolveRates_BTCBaseOnlySelf(t *testing.T) {
	f := newFixture(t)

	table, err := f.svc.ResolveRates(context.Background(), "BTC", []string{"BTC"})
	require.NoError(t, err)

	assert.Equal(t, 0, f.crypto.calls)
	assert.Equal(t, map[string]float64{"BTC": 1.0}, table.Rates)
}

func TestResolveRates_Mixed(t *testing.T) {
	f := newFixture(t)

	table, err := f.svc.ResolveRates(context.Background(), "USD", []string{"BTC", "EUR"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.crypto.calls)
	assert.Equal(t, 1, f.fiat.latestCalls)
	assert.Equal(t, []string{"EUR"}, f.fiat.lastSymbols)
	assert.Equal(t, entities.SourceMixed, table.Source)
	assert.Equal(t, "2024-05-10", table.Date)
	assert.Equal(t, 0.92, table.Rates["EUR"])
	assert.InDelta(t, 1.0/50000, table.Rates["BTC"], 1e-15)
}

func TestResolveRates_CachedWithinWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.ResolveRates(ctx, "USD", []string{"BTC", "EUR"})
	require.NoError(t, err)

	f.clock.Advance(4 * time.Minute)

	second, err := f.svc.ResolveRates(ctx, "USD", []string{"EUR", "BTC"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.crypto.calls)
	assert.Equal(t, 1, f.fiat.latestCalls)
	assert.Equal(t, first, second)
}

func TestResolveRates_RefetchedAfterWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ResolveRates(ctx, "USD", []string{"EUR"})
	require.NoError(t, err)

	f.clock.Advance(5 * time.Minute)

	_, err = f.svc.ResolveRates(ctx, "USD", []string{"EUR"})
	require.NoError(t, err)

	assert.Equal(t, 2, f.fiat.latestCalls)
}

func TestResolveRates_CacheKeyIncludesAllArguments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ResolveRates(ctx, "USD", []string{"EUR"})
	require.NoError(t, err)
	_, err = f.svc.ResolveRates(ctx, "USD", []string{"EUR", "GBP"})
	require.NoError(t, err)
	_, err = f.svc.ResolveRates(ctx, "EUR", []string{"GBP"})
	require.NoError(t, err)

	assert.Equal(t, 3, f.fiat.latestCalls)
}

func TestResolveRates_PartialWhenFiatFails(t *testing.T) {
	f := newFixture(t)
	f.fiat.err = errUpstream

	table, err := f.svc.ResolveRates(context.Background(), "USD", []string{"BTC", "EUR", "GBP"})
	require.NoError(t, err)

	assert.Equal(t, []string{"BTC"}, keys(table.Rates))
	assert.Equal(t, []string{"EUR", "GBP"}, table.Missing)
	assert.Equal(t, entities.SourceCrypto, table.Source)
	assert.Equal(t, entities.LiveDate, table.Date)
}

func TestResolveRates_PartialWhenCryptoFails(t *testing.T) {
	f := newFixture(t)
	f.crypto.err = errUpstream

	table, err := f.svc.ResolveRates(context.Background(), "USD", []string{"BTC", "EUR"})
	require.NoError(t, err)

	assert.Equal(t, []string{"EUR"}, keys(table.Rates))
	assert.Equal(t, []string{"BTC"}, table.Missing)
	assert.Equal(t, entities.SourceFiat, table.Source)
}

func TestResolveRates_TotalFailure(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		targets []string
	}{
		{name: "fiat only", base: "USD", targets: []string{"EUR"}},
		{name: "mixed", base: "USD", targets: []string{"BTC", "EUR"}},
		{name: "btc base", base: "BTC", targets: []string{"EUR", "BTC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fiat.err = errUpstream
			f.crypto.err = errUpstream

			table, err := f.svc.ResolveRates(context.Background(), tt.base, tt.targets)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, entities.ErrRatesUnavailable)
			assert.ErrorIs(t, err, errUpstream)
		})
	}
}

func TestResolveRates_FailuresAreNotCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.fiat.err = errUpstream

	_, err := f.svc.ResolveRates(ctx, "USD", []string{"EUR"})
	require.Error(t, err)

	f.fiat.err = nil

	table, err := f.svc.ResolveRates(ctx, "USD", []string{"EUR"})
	require.NoError(t, err)
	assert.Equal(t, 0.92, table.Rates["EUR"])
	assert.Equal(t, 2, f.fiat.latestCalls)
}

func TestResolveRates_NonPositiveBTCPrice(t *testing.T) {
	f := newFixture(t)
	f.crypto.prices["USD"] = 0

	table, err := f.svc.ResolveRates(context.Background(), "USD", []string{"BTC"})
	require.NoError(t, err)

	rate, ok := table.Rate("BTC")
	assert.True(t, ok)
	assert.Zero(t, rate)
}

func TestResolveRates_BTCPriceMissingForBase(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ResolveRates(context.Background(), "JPY", []string{"BTC"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrRatesUnavailable)
}

func TestResolveRates_BaseStrippedFromTargets(t *testing.T) {
	f := newFixture(t)

	table, err := f.svc.ResolveRates(context.Background(), "USD", []string{"USD", "EUR"})
	require.NoError(t, err)

	assert.Equal(t, []string{"EUR"}, f.fiat.lastSymbols)
	_, ok := table.Rate("USD")
	assert.False(t, ok)
}

func TestResolveRates_NoTargets(t *testing.T) {
	f := newFixture(t)

	for _, targets := range [][]string{nil, {}, {"USD"}, {" "}} {
		_, err := f.svc.ResolveRates(context.Background(), "USD", targets)
		assert.ErrorIs(t, err, entities.ErrNoTargets)
	}

	assert.Equal(t, 0, f.fiat.latestCalls)
	assert.Equal(t, 0, f.crypto.calls)
}

func TestResolveRates_UpstreamOmitsTarget(t *testing.T) {
	f := newFixture(t)

	table, err := f.svc.ResolveRates(context.Background(), "USD", []string{"EUR", "XYZ"})
	require.NoError(t, err)

	assert.Equal(t, []string{"EUR"}, keys(table.Rates))
	assert.Equal(t, []string{"XYZ"}, table.Missing)
}

func keys(m map[string]float64) []string {
	result := make([]string, 0, len(m))
	for k := range m {
		result = append(result, k)
	}

	return entities.SortedCodes(result)
}

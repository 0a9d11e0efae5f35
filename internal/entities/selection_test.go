package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Sanitize(t *testing.T) {
	got := Selection{Source: " ", Currencies: []string{"eur", "EUR", "usd"}, Amount: -1}.Sanitize("")

	assert.Equal(t, Selection{Source: "USD", Currencies: []string{"EUR", "USD"}, Amount: 0}, got)
}

func TestSelection_SanitizeAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{name: "positive", amount: 12.5, want: 12.5},
		{name: "negative", amount: -3, want: 0},
		{name: "nan", amount: math.NaN(), want: 0},
		{name: "positive infinity", amount: math.Inf(1), want: 0},
		{name: "negative infinity", amount: math.Inf(-1), want: 0},
		{name: "largest finite", amount: math.MaxFloat64, want: math.MaxFloat64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Selection{Source: "USD", Amount: tt.amount}.Sanitize("")
			assert.Equal(t, tt.want, got.Amount)
		})
	}
}

func TestSelection_Targets(t *testing.T) {
	s := Selection{Source: "USD", Currencies: []string{"EUR", "USD", "BTC"}}

	assert.Equal(t, []string{"EUR", "BTC"}, s.Targets())
	assert.True(t, s.SourceInTargets())
	assert.False(t, Selection{Source: "GBP", Currencies: []string{"EUR"}}.SourceInTargets())
}

func TestRateTable_MergeKeepsExisting(t *testing.T) {
	table := NewRateTable("USD")
	table.Rates["BTC"] = 0.00002

	added := table.Merge(map[string]float64{"BTC": 5, "EUR": 0})
	assert.Equal(t, 1, added)
	assert.Equal(t, 0.00002, table.Rates["BTC"])

	rate, ok := table.Rate("EUR")
	assert.True(t, ok)
	assert.Zero(t, rate)

	_, ok = table.Rate("GBP")
	assert.False(t, ok)

	var empty *RateTable
	_, ok = empty.Rate("EUR")
	assert.False(t, ok)
}

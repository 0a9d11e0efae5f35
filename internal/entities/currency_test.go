package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCatalog(t *testing.T) {
	c := NewCatalog(map[string]string{"eur": "Euro", " usd ": "United States Dollar", "": "blank"})

	assert.Equal(t, Catalog{"EUR": "Euro", "USD": "United States Dollar", "BTC": "Bitcoin"}, c)
	assert.Equal(t, []string{"BTC", "EUR", "USD"}, c.Codes())
	assert.True(t, c.Has("eur"))
	assert.Equal(t, "EUR - Euro", c.Label("EUR"))
	assert.Equal(t, "XYZ", c.Label("XYZ"))
}

func TestFallbackCatalog(t *testing.T) {
	c := FallbackCatalog()
	assert.Len(t, c, 9)
	assert.Equal(t, BitcoinName, c[BTC])

	c["USD"] = "changed"
	assert.Equal(t, "United States Dollar", FallbackCatalog()["USD"])
}

func TestNormalizeCodes(t *testing.T) {
	assert.Equal(t, []string{"GBP", "EUR", "BTC"}, NormalizeCodes([]string{"gbp", "EUR", " ", "btc", "Eur"}))
	assert.Equal(t, []string{"BTC", "EUR", "GBP"}, SortedCodes([]string{"gbp", "EUR", "btc"}))
	assert.Empty(t, NormalizeCodes(nil))
}

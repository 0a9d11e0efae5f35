package entities

// Source names the upstream that produced a rate table.
type Source string

const (
	SourceFiat   Source = "Frankfurter"
	SourceCrypto Source = "CoinGecko"
	SourceMixed  Source = "Mixed"
)

// LiveDate marks rates without an upstream publication date.
const LiveDate = "Live"

// FiatQuote is a dated rate table as published by the fiat source.
type FiatQuote struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// RateTable holds units of each target per one unit of Base. A target the
// sources could not satisfy has no key; a zero value is a real upstream rate.
type RateTable struct {
	Base    string             `json:"base"`
	Date    string             `json:"date"`
	Source  Source             `json:"source"`
	Rates   map[string]float64 `json:"rates"`
	Missing []string           `json:"missing,omitempty"`
}

func NewRateTable(base string) *RateTable {
	return &RateTable{
		Base:  base,
		Rates: make(map[string]float64),
	}
}

func (t *RateTable) Rate(code string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	rate, ok := t.Rates[code]

	return rate, ok
}

// Merge adds rates for codes not yet present and reports how many were added.
func (t *RateTable) Merge(rates map[string]float64) int {
	added := 0
	for code, rate := range rates {
		if _, ok := t.Rates[code]; ok {
			continue
		}
		t.Rates[code] = rate
		added++
	}

	return added
}

func (t *RateTable) Len() int {
	return len(t.Rates)
}

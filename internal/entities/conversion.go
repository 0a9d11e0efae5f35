package entities

type ConversionState string

const (
	StateNoTargets        ConversionState = "no_targets"
	StateZeroAmount       ConversionState = "zero_amount"
	StateOnlySource       ConversionState = "only_source"
	StateRatesUnavailable ConversionState = "rates_unavailable"
	StateConverted        ConversionState = "converted"
)

// ConversionLine is one target of a conversion. Rate and Amount are nil when
// no rate is known, which is different from a rate of zero.
type ConversionLine struct {
	Currency      string   `json:"currency"`
	Rate          *float64 `json:"rate"`
	Amount        *float64 `json:"amount"`
	Available     bool     `json:"available"`
	SameCurrency  bool     `json:"same_currency,omitempty"`
	DisplayRate   string   `json:"display_rate,omitempty"`
	DisplayAmount string   `json:"display_amount,omitempty"`
}

type Conversion struct {
	State           ConversionState  `json:"state"`
	Source          string           `json:"source_currency"`
	Amount          float64          `json:"amount"`
	SourceInTargets bool             `json:"source_in_targets"`
	Date            string           `json:"date,omitempty"`
	RateSource      Source           `json:"rate_source,omitempty"`
	Lines           []ConversionLine `json:"lines"`
	Warning         string           `json:"warning,omitempty"`
}

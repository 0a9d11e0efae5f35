package entities

import (
	"sort"
	"strings"
)

// BTC is the only cryptocurrency known to the converter.
const BTC = "BTC"

const BitcoinName = "Bitcoin"

// Catalog maps an upper-case currency code to its display name.
type Catalog map[string]string

var fallbackCatalog = Catalog{
	"USD": "United States Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"AUD": "Australian Dollar",
	"CAD": "Canadian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Renminbi Yuan",
	BTC:   BitcoinName,
}

// FallbackCatalog returns a fresh copy of the static list served when the
// upstream currency list cannot be fetched.
func FallbackCatalog() Catalog {
	c := make(Catalog, len(fallbackCatalog))
	for code, name := range fallbackCatalog {
		c[code] = name
	}

	return c
}

// NewCatalog normalizes upstream codes and appends Bitcoin.
func NewCatalog(names map[string]string) Catalog {
	c := make(Catalog, len(names)+1)
	for code, name := range names {
		code = NormalizeCode(code)
		if code == "" {
			continue
		}
		c[code] = name
	}
	c[BTC] = BitcoinName

	return c
}

func (c Catalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes
}

func (c Catalog) Has(code string) bool {
	_, ok := c[NormalizeCode(code)]
	return ok
}

// Label renders "USD - United States Dollar", or the bare code when unknown.
func (c Catalog) Label(code string) string {
	name, ok := c[code]
	if !ok {
		return code
	}

	return code + " - " + name
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCodes upper-cases codes, drops blanks and duplicates, and keeps
// the first-seen order.
func NormalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		code = NormalizeCode(code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, code)
	}

	return result
}

// SortedCodes is NormalizeCodes followed by a lexical sort. It is the
// canonical form used in cache keys and upstream queries.
func SortedCodes(codes []string) []string {
	result := NormalizeCodes(codes)
	sort.Strings(result)

	return result
}

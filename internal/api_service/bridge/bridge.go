// Package bridge maps a selection between the browser's local storage, the
// page's query parameters and the server-side session.
//
// On a first visit without query parameters the browser copies its stored
// keys into the query string and reloads. After that every render writes the
// current selection back to storage. Storage is never written before the
// first load completed, so a returning visitor's saved selection is not
// replaced by defaults.
package bridge

import (
	"encoding/json"
	"net/url"

	"github.com/langowen/converter/internal/entities"
)

const (
	StorageKeyCurrencies = "selected_currencies"
	StorageKeySource     = "source_currency"

	QueryCurrencies = "currencies"
	QuerySource     = "source_currency"
)

// HasParams reports whether q carries any persisted selection.
func HasParams(q url.Values) bool {
	return q.Has(QueryCurrencies) || q.Has(QuerySource)
}

// FromQuery decodes the persisted selection. A currencies value that is not
// a JSON array of strings yields an empty list, and a blank source yields
// defaultSource.
func FromQuery(q url.Values, defaultSource string) entities.Selection {
	selection := entities.Selection{
		Source:     q.Get(QuerySource),
		Currencies: []string{},
	}

	if raw := q.Get(QueryCurrencies); raw != "" {
		var currencies []string
		if err := json.Unmarshal([]byte(raw), &currencies); err == nil {
			selection.Currencies = currencies
		}
	}

	return selection.Sanitize(defaultSource)
}

// ToQuery encodes a selection the way the browser puts it into the URL.
func ToQuery(selection entities.Selection) url.Values {
	return StorageToQuery(ToStorage(selection))
}

// ToStorage returns the local storage values for a selection.
func ToStorage(selection entities.Selection) map[string]string {
	currencies := selection.Currencies
	if currencies == nil {
		currencies = []string{}
	}

	// marshaling a []string cannot fail
	encoded, _ := json.Marshal(currencies)

	stored := map[string]string{
		StorageKeyCurrencies: string(encoded),
	}
	if selection.Source != "" {
		stored[StorageKeySource] = selection.Source
	}

	return stored
}

// StorageToQuery copies the stored keys that are present into query
// parameters.
func StorageToQuery(stored map[string]string) url.Values {
	q := url.Values{}

	if v, ok := stored[StorageKeyCurrencies]; ok && v != "" {
		q.Set(QueryCurrencies, v)
	}
	if v, ok := stored[StorageKeySource]; ok && v != "" {
		q.Set(QuerySource, v)
	}

	return q
}

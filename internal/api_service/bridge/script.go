package bridge

import (
	"bytes"
	"encoding/json"
	"text/template"

	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
)

var scriptTmpl = template.Must(template.New("bridge").Parse(`(function() {
    const hasLoaded = {{.HasLoaded}};
    const urlParams = new URLSearchParams(window.location.search);
    const hasQueryParams = urlParams.has({{.QueryCurrencies}}) || urlParams.has({{.QuerySource}});

    if (!hasLoaded && !hasQueryParams) {
        const savedCurrencies = localStorage.getItem({{.KeyCurrencies}});
        const savedSource = localStorage.getItem({{.KeySource}});

        if (savedCurrencies || savedSource) {
            const params = new URLSearchParams();
            if (savedCurrencies) {
                params.set({{.QueryCurrencies}}, savedCurrencies);
            }
            if (savedSource) {
                params.set({{.QuerySource}}, savedSource);
            }
            window.location.search = params.toString();
            return;
        }
    }

    if (hasLoaded || hasQueryParams) {
        const currentCurrencies = {{.Currencies}};
        const currentSource = {{.Source}};

        if (Array.isArray(currentCurrencies)) {
            localStorage.setItem({{.KeyCurrencies}}, JSON.stringify(currentCurrencies));
        }
        if (currentSource) {
            localStorage.setItem({{.KeySource}}, currentSource);
        }
    }
})();
`))

type scriptData struct {
	HasLoaded       bool
	Currencies      string
	Source          string
	KeyCurrencies   string
	KeySource       string
	QueryCurrencies string
	QuerySource     string
}

// Script renders the browser side of the bridge. hasLoaded is false only on
// the render that handles a visitor's initial load.
func Script(hasLoaded bool, selection entities.Selection) (string, error) {
	const op = "bridge.Script"

	currencies := selection.Currencies
	if currencies == nil {
		currencies = []string{}
	}

	data := scriptData{HasLoaded: hasLoaded}

	values := []struct {
		dst *string
		src any
	}{
		{&data.Currencies, currencies},
		{&data.Source, selection.Source},
		{&data.KeyCurrencies, StorageKeyCurrencies},
		{&data.KeySource, StorageKeySource},
		{&data.QueryCurrencies, QueryCurrencies},
		{&data.QuerySource, QuerySource},
	}
	for _, v := range values {
		encoded, err := json.Marshal(v.src)
		if err != nil {
			return "", errors.Wrap(err, op)
		}
		*v.dst = string(encoded)
	}

	var buf bytes.Buffer
	if err := scriptTmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, op)
	}

	return buf.String(), nil
}

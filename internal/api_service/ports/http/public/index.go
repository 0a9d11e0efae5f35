package public

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/langowen/converter/internal/api_service/bridge"
	"github.com/langowen/converter/internal/entities"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Currency Converter</title>
</head>
<body>
<h1>Currency Converter</h1>
{{if .CatalogWarning}}<p class="warning">{{.CatalogWarning}}</p>{{end}}
<p class="catalog">{{len .Catalog}} currencies available</p>
{{with .Conversion}}
{{if .SourceInTargets}}<p class="warning">Source currency ({{.Source}}) is in your selected currencies. It will show as 1:1 conversion.</p>{{end}}
{{if eq .State "no_targets"}}<p>Please select at least one currency to convert to.</p>{{end}}
{{if eq .State "zero_amount"}}<p>Enter an amount greater than zero.</p>{{end}}
{{if eq .State "only_source"}}<p>All selected currencies are the same as the source currency. Please select different currencies to convert to.</p>{{end}}
{{if eq .State "rates_unavailable"}}<p class="error">{{.Warning}}</p>{{end}}
{{if eq .State "converted"}}
<p>Exchange rates updated as of {{.Date}} ({{.RateSource}})</p>
{{if .Warning}}<p class="warning">{{.Warning}}</p>{{end}}
<ul>
{{range .Lines}}<li>{{$.Conversion.Amount}} {{$.Conversion.Source}} &rarr; {{.Currency}}: {{if .Available}}{{.DisplayAmount}} (rate {{.DisplayRate}}{{if .SameCurrency}}, same currency{{end}}){{else}}no rate available{{end}}</li>
{{end}}</ul>
{{end}}
{{end}}
<script>{{.Script}}</script>
</body>
</html>
`))

type indexData struct {
	Catalog        entities.Catalog
	CatalogWarning string
	Conversion     *entities.Conversion
	Script         template.JS
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, created, err := s.bootstrap(w, r)
	if err != nil {
		slog.Error("open session failed", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	data := indexData{}

	data.Catalog, err = s.service.FetchCurrencies(ctx)
	if err != nil {
		data.CatalogWarning = "Failed to fetch currencies, showing common currencies only"
	}

	data.Conversion = s.service.Convert(ctx, session.Selection)

	script, err := bridge.Script(!created, session.Selection)
	if err != nil {
		slog.Error("render bridge script failed", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}
	// The script only embeds JSON-encoded values.
	data.Script = template.JS(script)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		slog.Error("render index failed", "error", err)
	}
}

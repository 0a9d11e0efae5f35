package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/langowen/converter/deploy/config"
	"github.com/langowen/converter/internal/api_service/adapter/api_client/coingecko"
	"github.com/langowen/converter/internal/api_service/adapter/api_client/frankfurter"
	"github.com/langowen/converter/internal/api_service/adapter/cache/memory"
	sessionMemory "github.com/langowen/converter/internal/api_service/adapter/storage/memory"
	"github.com/langowen/converter/internal/api_service/service"
	"github.com/langowen/converter/internal/entities"
	"github.com/pkg/errors"
)

type CLI struct {
	Amount  float64  `help:"Amount to convert." default:"100"`
	From    string   `help:"Currency to convert from." short:"f" default:"USD"`
	List    bool     `help:"List known currencies and exit."`
	Targets []string `arg:"" optional:"" help:"Currencies to convert to, e.g. EUR BTC."`
}

func main() {
	var cli CLI

	kctx := kong.Parse(&cli,
		kong.Name("convert"),
		kong.Description("Convert an amount between currencies using live exchange rates."),
	)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg := config.NewConfig()

	svc, err := service.NewService(
		frankfurter.NewHTTPClient(cfg.Fiat.URL, cfg.Upstream.Timeout),
		coingecko.NewHTTPClient(cfg.Crypto.URL, cfg.Upstream.Timeout),
		memory.NewCache(),
		sessionMemory.NewStorage(),
		cfg,
	)
	kctx.FatalIfErrorf(err)

	ctx := context.Background()

	if cli.List {
		kctx.FatalIfErrorf(listCurrencies(ctx, os.Stdout, svc))
		return
	}

	conv := svc.Convert(ctx, entities.Selection{
		Source:     cli.From,
		Currencies: cli.Targets,
		Amount:     cli.Amount,
	})

	kctx.FatalIfErrorf(printConversion(os.Stdout, conv))
}

func listCurrencies(ctx context.Context, out io.Writer, svc *service.Service) error {
	catalog, err := svc.FetchCurrencies(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: failed to fetch currencies, showing common currencies only")
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, code := range catalog.Codes() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", code, catalog[code]); err != nil {
			return errors.Wrap(err, "fprintf")
		}
	}

	return errors.Wrap(w.Flush(), "flush")
}

func printConversion(out io.Writer, conv *entities.Conversion) error {
	switch conv.State {
	case entities.StateNoTargets:
		return errors.New("select at least one currency to convert to")
	case entities.StateZeroAmount:
		_, err := fmt.Fprintln(out, "nothing to convert: amount is zero")
		return err
	case entities.StateOnlySource:
		return errors.New("all selected currencies are the same as the source currency")
	case entities.StateRatesUnavailable:
		return errors.New(conv.Warning)
	}

	if _, err := fmt.Fprintf(out, "rates as of %s (%s)\n", conv.Date, conv.RateSource); err != nil {
		return errors.Wrap(err, "fprintf")
	}
	if conv.Warning != "" {
		fmt.Fprintln(os.Stderr, "warning:", conv.Warning)
	}

	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', tabwriter.AlignRight|tabwriter.Debug)
	for _, line := range conv.Lines {
		var err error
		if line.Available {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\t\n", line.Currency, line.DisplayAmount, line.DisplayRate)
		} else {
			_, err = fmt.Fprintf(w, "%s\t-\tno rate\t\n", line.Currency)
		}
		if err != nil {
			return errors.Wrap(err, "fprintf")
		}
	}

	return errors.Wrap(w.Flush(), "flush")
}

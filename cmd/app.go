// Package cmd implements the CLI application to manage a trade journal.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/hmelse/folio"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Commands lists the subcommands of the application in registration order.
// A main package registers each of them on its commander and executes the
// user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&priceCmd{},
	&txCmd{},
	&holdingsCmd{},
	&valueCmd{},
	&historyCmd{},
	&fmtCmd{},
	&serveCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	journalFile = flag.String("journal-file", "", "Path to the journal file containing trades (JSONL format). Defaults to $FOLIO_JOURNAL or journal.jsonl")
	pricesFile  = flag.String("prices-file", "", "Path to the quoted prices file (JSONL format). Defaults to $FOLIO_PRICES or prices.jsonl")
	cashFlag    = flag.String("cash-ticker", "", "Ticker that holds the liquid cash position. Defaults to $FOLIO_CASH or CASH")
	curFlag     = flag.String("currency", "", "Reporting currency for prices and valuations. Defaults to $FOLIO_CURRENCY or USD")
	verbose     = flag.Bool("v", false, "Enable debug logging")
)

// Setup configures the global logger from the flags. Call it after flag.Parse.
func Setup() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
}

// getEnv reads an environment variable or returns a fallback when it is
// unset or empty.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// The flag defaults stay empty and resolution happens at use time, so a .env
// file loaded in main still applies after the flags were declared.

// journalPath resolves the journal file from the flag, the environment, or
// the default, in that order.
func journalPath() string {
	if *journalFile != "" {
		return *journalFile
	}
	return getEnv("FOLIO_JOURNAL", "journal.jsonl")
}

// pricesPath resolves the prices file like journalPath does.
func pricesPath() string {
	if *pricesFile != "" {
		return *pricesFile
	}
	return getEnv("FOLIO_PRICES", "prices.jsonl")
}

// cashTicker resolves the ticker of the cash position.
func cashTicker() string {
	if *cashFlag != "" {
		return *cashFlag
	}
	return getEnv("FOLIO_CASH", "CASH")
}

// reportingCurrency resolves the currency used for prices and valuations.
func reportingCurrency() string {
	if *curFlag != "" {
		return *curFlag
	}
	return getEnv("FOLIO_CURRENCY", "USD")
}

// DecodeJournal decodes the journal from the application's journal file.
// If the file does not exist, it returns a new empty journal.
func DecodeJournal() (*folio.Journal, error) {
	filename := journalPath()
	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("file", filename).Msg("journal file does not exist, starting empty")
			return folio.NewJournal(), nil
		}
		return nil, fmt.Errorf("could not open journal file %q: %w", filename, err)
	}
	defer f.Close()

	journal, err := folio.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal file %q: %w", filename, err)
	}
	return journal, nil
}

// DecodePrices decodes the price table from the application's prices file.
// If the file does not exist, it returns a new empty table.
func DecodePrices() (*folio.PriceTable, error) {
	filename := pricesPath()
	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("file", filename).Msg("prices file does not exist, starting empty")
			return folio.NewPriceTable(), nil
		}
		return nil, fmt.Errorf("could not open prices file %q: %w", filename, err)
	}
	defer f.Close()

	table, err := folio.DecodePrices(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode prices file %q: %w", filename, err)
	}
	return table, nil
}

// loadPricer builds the pricer every report shares: quotes from the prices
// file with the cash ticker defaulting to one unit of the reporting currency.
func loadPricer() (folio.Pricer, error) {
	table, err := DecodePrices()
	if err != nil {
		return nil, err
	}
	return folio.CashAware(table.Pricer(), cashTicker(), reportingCurrency()), nil
}

// appendTrade validates a single trade and appends it to the app journal file.
func appendTrade(t folio.Trade) subcommands.ExitStatus {
	t, err := t.Validate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid trade: %v\n", err)
		return subcommands.ExitUsageError
	}

	filename := journalPath()
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := folio.EncodeTrade(f, t); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended trade to %s\n", filename)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the renderer is unavailable.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

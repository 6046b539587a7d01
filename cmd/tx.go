package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"
	"github.com/hmelse/folio"
	"github.com/hmelse/folio/renderer"
)

type txCmd struct {
	period string
	start  string
	date   string
	ticker string
	kind   string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list trades recorded in the journal" }
func (*txCmd) Usage() string {
	return `tx [-p <period> | -s <start_date>] [-d <end_date>] [-t <ticker>] [-k <kind>] [-head <n>] [-tail <n>]

  Lists trades from the journal, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&p.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&p.date, "d", "", "The end date for the range.")
	f.StringVar(&p.ticker, "t", "", "Show only trades of this ticker.")
	f.StringVar(&p.kind, "k", "", "Show only trades of this kind (buy, sell, deposit, withdraw).")
	f.IntVar(&p.head, "head", 0, "Show only the first N trades.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N trades.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var inRange func(folio.Trade) bool
	// If no date range flags are provided, use the full range of the journal.
	useFullRange := p.start == "" && p.date == "" && p.period == ""

	if !useFullRange {
		// Default end date to today if not provided
		endDateStr := p.date
		if endDateStr == "" {
			endDateStr = folio.Today().String()
		}
		endDate, err := folio.ParseDate(endDateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitFailure
		}

		var periodRange folio.Range
		if p.start != "" {
			startDate, err := folio.ParseDate(p.start)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
				return subcommands.ExitFailure
			}
			periodRange = folio.NewRange(startDate, endDate)
		} else {
			period, err := folio.ParsePeriod(p.period)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
				return subcommands.ExitFailure
			}
			periodRange = period.Range(endDate)
		}
		inRange = folio.ByRange(periodRange)
	}

	byTicker := folio.ByTicker(p.ticker)
	byKind := folio.ByKind(folio.Kind(p.kind))

	var trades []folio.Trade
	for t := range journal.Trades() {
		if inRange != nil && !inRange(t) {
			continue
		}
		if p.ticker != "" && !byTicker(t) {
			continue
		}
		if p.kind != "" && !byKind(t) {
			continue
		}
		trades = append(trades, t)
	}

	if p.head > 0 && len(trades) > p.head {
		trades = trades[:p.head]
	}
	if p.tail > 0 && len(trades) > p.tail {
		trades = trades[len(trades)-p.tail:]
	}

	printMarkdown(renderer.TradesMarkdown(slices.Values(trades)))

	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hmelse/folio"
	"github.com/hmelse/folio/renderer"
)

type historyCmd struct {
	start  string
	date   string
	ticker string
	chart  string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display portfolio or asset value history" }
func (*historyCmd) Usage() string {
	return `history [-s <start_date>] [-d <end_date>] [-t <ticker>] [-chart <file.png>]

  Displays the value of the whole portfolio, or of a single asset, for each
  day of a date range. The positions are those held after the last trade in
  the journal; only the pricing date varies along the range.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "The start date for the range. Defaults to the oldest trade date.")
	f.StringVar(&c.date, "d", folio.Today().String(), "The end date for the range.")
	f.StringVar(&c.ticker, "t", "", "Ticker to report on. Defaults to the whole portfolio.")
	f.StringVar(&c.chart, "chart", "", "Also render the history as a PNG chart into this file.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}

	endDate, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	startDate := journal.OldestTradeDate()
	if c.start != "" {
		startDate, err = folio.ParseDate(c.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if startDate.IsZero() {
		fmt.Fprintln(os.Stderr, "Error: the journal is empty and no start date was given.")
		return subcommands.ExitUsageError
	}

	pricer, err := loadPricer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := folio.NewHistoryReport(journal, cashTicker(), pricer, c.ticker, folio.NewRange(startDate, endDate))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating history report: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.chart != "" {
		png, err := renderer.HistoryChart(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.chart, png, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing chart file %q: %v\n", c.chart, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Chart written to %s\n", c.chart)
	}

	printMarkdown(renderer.HistoryMarkdown(report))

	return subcommands.ExitSuccess
}

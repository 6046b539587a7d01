package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hmelse/folio"
	"github.com/hmelse/folio/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	date    string
	jsonOut bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display detailed holdings priced on a specific date" }
func (*holdingsCmd) Usage() string {
	return `holdings [-d <date>] [-json]

  Displays the portfolio holdings (securities and cash) priced on a given date.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Date for the holdings report. See 'topic dates' for supported formats.")
	f.BoolVar(&c.jsonOut, "json", false, "Print the report as JSON instead of markdown")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}

	pricer, err := loadPricer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := folio.NewHoldingsReport(journal, cashTicker(), pricer, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating holdings report: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.jsonOut {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.HoldingsMarkdown(report))

	return subcommands.ExitSuccess
}

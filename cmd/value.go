package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/hmelse/folio"
	"github.com/hmelse/folio/renderer"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	date  string
	query string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the total portfolio value on a specific date" }
func (*valueCmd) Usage() string {
	return `value [-d <date>] [-query <jsonpath>]

  Displays the market value of each position and the total portfolio value
  on a given date. With -query, prints the part of the report selected by a
  JSONPath expression, for scripting.

Usage Examples:
# Total value as a plain number.
$ fol value -query '$.totalValue.amount'
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Date for the valuation. See 'topic dates' for supported formats.")
	f.StringVar(&c.query, "query", "", "JSONPath expression to extract a value from the report")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		fmt.Fprintf(os.Stderr, "Error creating value report: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.query != "" {
		return printQuery(report, c.query)
	}

	printMarkdown(renderer.ValueMarkdown(report))

	return subcommands.ExitSuccess
}

// printQuery marshals the report and prints the part selected by the
// JSONPath expression.
func printQuery(report *folio.HoldingsReport, query string) subcommands.ExitStatus {
	data, err := json.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling report: %v\n", err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling report: %v\n", err)
		return subcommands.ExitFailure
	}

	jval, err := jsonpath.Get(query, jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating query %q: %v\n", query, err)
		return subcommands.ExitUsageError
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case string:
		fmt.Println(v)
	case float64:
		fmt.Println(v)
	default:
		out, err := json.Marshal(jval)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling query result: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
	}
	return subcommands.ExitSuccess
}

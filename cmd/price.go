package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hmelse/folio"
)

// --- Price Command ---

type priceCmd struct {
	date   string
	ticker string
	price  float64
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "record a quoted price for a ticker" }
func (*priceCmd) Usage() string {
	return `price -d <date> -t <ticker> -p <price>

  Records the price of one share of a ticker on a date. Reports use the
  last price recorded on or before their date.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Quote date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.Float64Var(&c.price, "p", 0, "Price of one share")
}

func (c *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.price <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	point := folio.PricePoint{
		Date:   day,
		Ticker: c.ticker,
		Price:  folio.M(c.price, reportingCurrency()),
	}

	filename := pricesPath()
	// Open the file in append mode, creating it if it doesn't exist.
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening prices file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if err := folio.EncodePricePoint(file, point); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to prices file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended price to %s\n", filename)
	return subcommands.ExitSuccess
}

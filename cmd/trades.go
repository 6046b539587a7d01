package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hmelse/folio"
)

// --- Buy Command ---

type buyCmd struct {
	date       string
	ticker     string
	shares     float64
	price      float64
	commission float64
	memo       string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -d <date> -t <ticker> -q <shares> -p <price> [-c <commission>] [-m <memo>]

  Purchases shares of a security. The total cost plus the commission is
  debited from the cash position.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.Float64Var(&c.shares, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.commission, "c", 0, "Broker commission for the trade")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the trade")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.shares <= 0 || c.price <= 0 || c.commission < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	currency := reportingCurrency()
	t := folio.NewBuy(day, c.memo, c.ticker, folio.Q(c.shares), folio.M(c.price, currency), folio.M(c.commission, currency))
	return appendTrade(t)
}

// --- Sell Command ---

type sellCmd struct {
	date       string
	ticker     string
	shares     float64
	price      float64
	commission float64
	memo       string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -d <date> -t <ticker> -q <shares> -p <price> [-c <commission>] [-m <memo>]

  Sells shares of a security. The proceeds minus the commission are
  credited to the cash position.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.Float64Var(&c.shares, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
	f.Float64Var(&c.commission, "c", 0, "Broker commission for the trade")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the trade")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.shares <= 0 || c.price <= 0 || c.commission < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	currency := reportingCurrency()
	t := folio.NewSell(day, c.memo, c.ticker, folio.Q(c.shares), folio.M(c.price, currency), folio.M(c.commission, currency))
	return appendTrade(t)
}

// --- Deposit Command ---

type depositCmd struct {
	date   string
	amount float64
	memo   string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash deposit into the portfolio" }
func (*depositCmd) Usage() string {
	return `deposit -d <date> -a <amount> [-m <memo>]

  Records a cash deposit. The amount is credited to the cash position,
  counted in cash-ticker units.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Trade date (YYYY-MM-DD)")
	f.Float64Var(&c.amount, "a", 0, "Amount of cash to deposit")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	t := folio.NewDeposit(day, c.memo, folio.Q(c.amount))
	return appendTrade(t)
}

// --- Withdraw Command ---

type withdrawCmd struct {
	date   string
	amount float64
	memo   string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a cash withdrawal from the portfolio" }
func (*withdrawCmd) Usage() string {
	return `withdraw -d <date> -a <amount> [-m <memo>]

  Records a cash withdrawal. The amount is debited from the cash position,
  counted in cash-ticker units. The cash position is allowed to go negative.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", folio.Today().String(), "Trade date (YYYY-MM-DD)")
	f.Float64Var(&c.amount, "a", 0, "Amount of cash to withdraw")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := folio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	t := folio.NewWithdrawal(day, c.memo, folio.Q(c.amount))
	return appendTrade(t)
}

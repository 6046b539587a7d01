package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/hmelse/folio"
	"github.com/hmelse/folio/service"
	"github.com/rs/zerolog/log"
)

// fileStore reloads the journal and the pricer from the app files on every
// request.
type fileStore struct{}

func (fileStore) Journal() (*folio.Journal, error) { return DecodeJournal() }
func (fileStore) Pricer() (folio.Pricer, error)    { return loadPricer() }

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve portfolio reports over HTTP" }
func (*serveCmd) Usage() string {
	return `serve [-addr <address>]

  Serves the journal's reports over HTTP:

    GET /healthz
    GET /v1/holdings?date=<date>
    GET /v1/value?date=<date>
    GET /v1/trades?ticker=<ticker>&kind=<kind>
    GET /v1/history?start=<date>&end=<date>&ticker=<ticker>

  The journal and prices files are reloaded on every request, so trades
  appended while the server runs are visible immediately.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8787", "Address to listen on")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	srv := service.New(service.Config{
		Addr:       c.addr,
		CashTicker: cashTicker(),
		Store:      fileStore{},
		Log:        log.Logger,
	})

	// Start server in goroutine
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	case <-quit:
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

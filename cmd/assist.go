package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/hmelse/folio/agent"
	"google.golang.org/genai"
)

// --- Assist Command ---

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with an AI assistant about the journal" }
func (*assistCmd) Usage() string {
	return `assist [question...]:
  Start an interactive session with an AI assistant backed by Gemini.

  The assistant can read the trade journal, value the positions, and search
  the web for market information. Arguments, if any, are joined into the
  opening question.

  The Gemini client reads its credentials from the environment (GEMINI_API_KEY).
  The journal and prices files are resolved from $FOLIO_JOURNAL and
  $FOLIO_PRICES, not from the command line flags.

  Example:
  $ fol assist "how is my portfolio doing?"
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	trader := agent.NewTrader()
	bookkeeper := agent.NewBookkeeper()
	a := agent.New(os.Stdout, os.Stdin, trader, bookkeeper)

	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

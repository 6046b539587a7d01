package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hmelse/folio"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fmt [-o <output_file>]

  Validates and formats the journal file. This command reads all trades,
  validates them, applies available quick-fixes (like defaulting a missing
  date to today), sorts them by date, and writes them back in a canonical
  JSONL format. By default, it rewrites the journal file in-place.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.outputFile, "o", "", "Write the formatted journal to this file instead of in-place.")
}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	journal, err := DecodeJournal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load journal: %v\n", err)
		return subcommands.ExitFailure
	}

	formatted := folio.NewJournal()
	for t := range journal.Trades() {
		valid, err := t.Validate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid %s trade on %s: %v\n", t.What(), t.When(), err)
			return subcommands.ExitFailure
		}
		formatted.Append(valid)
	}

	filename := p.outputFile
	if filename == "" {
		filename = journalPath()
	}

	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	if err := folio.EncodeJournal(file, formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %s (%d trades)\n", filename, formatted.Len())
	return subcommands.ExitSuccess
}

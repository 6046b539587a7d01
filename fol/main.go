// fol is the command line tool to keep a trade journal and report on it.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/hmelse/folio/cmd"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A .env file can hold the FOLIO_* variables of a journal kept in its own
	// directory. Flags still win, they are resolved at use time.
	_ = godotenv.Load()

	// Shell completion. Complete exits the process when invoked by the shell,
	// so it must run before flag parsing.
	completion().Complete("fol")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	cmd.Setup()

	// An unknown subcommand may be an external fol-<name> binary on the PATH.
	if name := flag.Arg(0); name != "" && !builtin(name) {
		if handled, code := cmd.RunExtension(name, flag.Args()[1:]); handled {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

// builtin reports whether name is one of the registered subcommands.
func builtin(name string) bool {
	if name == "help" {
		return true
	}
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// completion declares the subcommands and global flags to the shell.
func completion() *complete.Command {
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"journal-file": predict.Files("*.jsonl"),
			"prices-file":  predict.Files("*.jsonl"),
			"cash-ticker":  predict.Nothing,
			"currency":     predict.Nothing,
			"v":            predict.Nothing,
		},
	}
}

package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Environment passed to extension binaries. These are the same variables the
// application itself reads, set to the resolved values, so an extension sees
// the effective configuration even when it came from the command line flags.
const (
	EnvJournalFile = "FOLIO_JOURNAL"
	EnvPricesFile  = "FOLIO_PRICES"
	EnvCashTicker  = "FOLIO_CASH"
	EnvCurrency    = "FOLIO_CURRENCY"
	EnvVerbose     = "FOLIO_VERBOSE"
)

// RunExtension attempts to find and execute an external fol-<subcommand>
// binary. It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "fol-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Str("extension", externalCmdName).Msg("no extension found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass the resolved configuration as environment variables.
	cmd.Env = append(os.Environ(),
		EnvJournalFile+"="+journalPath(),
		EnvPricesFile+"="+pricesPath(),
		EnvCashTicker+"="+cashTicker(),
		EnvCurrency+"="+reportingCurrency(),
		EnvVerbose+"="+strconv.FormatBool(*verbose),
	)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		// Not an ExitError, so the command could not run at all.
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}

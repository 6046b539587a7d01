// Package folio models a brokerage portfolio as the fold of a trade journal.
//
// A portfolio snapshot is never stored: it is recomputed by applying a
// chronological sequence of trades (buys, sells, deposits, withdrawals) to
// the empty portfolio, one trade at a time. Each application returns a new
// snapshot and leaves its input untouched, so intermediate states can be
// kept or discarded freely.
//
// The core functionalities include:
//   - Trade Journal: an append-only record of trades, encoded to and from a
//     human-readable JSONL form suitable for version control.
//   - Trade Application: the state-transition function that moves shares and
//     cash between positions, conserving value except for commissions.
//   - Valuation: pricing a snapshot on any date through a caller-supplied
//     Pricer function; the package never fetches prices on its own.
//   - Dimensional Arithmetic: distinct Quantity (shares) and Money types so
//     that share counts and monetary amounts cannot be mixed by accident.
//
// This package serves as the foundational logic for the `fol` command-line
// tool, ensuring that all reports derive from a single source of truth: the
// journal.
package folio

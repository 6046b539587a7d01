package folio

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Position is a ticker paired with a signed quantity of shares.
type Position struct {
	Ticker string   // Ticker is the symbol the shares are held under.
	Shares Quantity // Shares is the signed number of shares held.
}

// String formats the position like "100 MSFT".
func (p Position) String() string { return fmt.Sprintf("%s %s", p.Shares, p.Ticker) }

// MarshalJSON implements the json.Marshaler interface for Position.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", p.Ticker)
	w.Append("shares", p.Shares)
	return w.MarshalJSON()
}

// Portfolio is a snapshot of holdings: a collection of positions with at most
// one position per ticker. The zero value is the empty portfolio, the
// identity state every fold starts from.
//
// A Portfolio is a value: applying a trade returns a new Portfolio and never
// touches the one it derived from.
type Portfolio struct {
	positions []Position
}

// NewPortfolio creates a portfolio holding the given positions.
func NewPortfolio(positions ...Position) Portfolio {
	return Portfolio{positions: slices.Clone(positions)}
}

// Len returns the number of positions in the portfolio.
func (p Portfolio) Len() int { return len(p.positions) }

// Positions returns an iterator that yields each position in its internal order.
func (p Portfolio) Positions() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, pos := range p.positions {
			if !yield(pos) {
				return
			}
		}
	}
}

// Tickers returns an iterator over the portfolio's tickers in lexical order.
func (p Portfolio) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		tickers := make([]string, 0, len(p.positions))
		for _, pos := range p.positions {
			tickers = append(tickers, pos.Ticker)
		}
		slices.Sort(tickers)
		for _, ticker := range tickers {
			if !yield(ticker) {
				return
			}
		}
	}
}

// Get returns the quantity of shares held under ticker, and whether a
// position exists for that ticker.
func (p Portfolio) Get(ticker string) (Quantity, bool) {
	for _, pos := range p.positions {
		if pos.Ticker == ticker {
			return pos.Shares, true
		}
	}
	return Quantity{}, false
}

// Equal reports whether two portfolios hold the same positions. Internal
// order is not significant: portfolios are equal iff they have the same
// tickers with equal share counts.
func (p Portfolio) Equal(o Portfolio) bool {
	if len(p.positions) != len(o.positions) {
		return false
	}
	for _, pos := range p.positions {
		shares, ok := o.Get(pos.Ticker)
		if !ok || !shares.Equal(pos.Shares) {
			return false
		}
	}
	return true
}

// String renders the portfolio with tickers in lexical order, like
// "{CASH: 9796, MSFT: 100}".
func (p Portfolio) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	for ticker := range p.Tickers() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		shares, _ := p.Get(ticker)
		fmt.Fprintf(&b, "%s: %s", ticker, shares)
	}
	b.WriteString("}")
	return b.String()
}

// dropZero returns the portfolio without positions whose quantity is exactly
// zero. The transition runs it after every single trade, never batched.
func (p Portfolio) dropZero() Portfolio {
	out := make([]Position, 0, len(p.positions))
	for _, pos := range p.positions {
		if pos.Shares.IsZero() {
			continue
		}
		out = append(out, pos)
	}
	return Portfolio{positions: out}
}

// duplicate returns a ticker held by more than one position, if any.
func (p Portfolio) duplicate() (string, bool) {
	seen := make(map[string]struct{}, len(p.positions))
	for _, pos := range p.positions {
		if _, ok := seen[pos.Ticker]; ok {
			return pos.Ticker, true
		}
		seen[pos.Ticker] = struct{}{}
	}
	return "", false
}

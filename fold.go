package folio

import (
	"errors"
	"fmt"
	"iter"
)

// Pricer is a pure price lookup mapping a ticker and a date to a price per
// share. The fold never fetches prices itself: callers inject whatever
// source they want, a price table, a fixed rate, or a closure over test data.
type Pricer func(ticker string, on Date) Money

var (
	// ErrDuplicateTicker reports a portfolio holding two positions under the
	// same ticker. It flags a bug in a prior step, not a property of the
	// trade being applied.
	ErrDuplicateTicker = errors.New("duplicate ticker in portfolio")

	// ErrCashPrice reports a cash price that cannot serve as a divisor when
	// converting trade money into cash-ticker units.
	ErrCashPrice = errors.New("invalid cash price")
)

// AddTrade applies a single trade to a portfolio and returns the resulting
// snapshot. cashTicker names the position that represents liquid cash: every
// trade that moves money also moves that position, so total value is
// conserved except for the commission.
//
// Cash going negative is not an error, it is free borrowing by design of the
// model. The only failures are the defects listed in ErrDuplicateTicker and
// ErrCashPrice.
func AddTrade(t Trade, cashTicker string, pricer Pricer, p Portfolio) (Portfolio, error) {
	if ticker, ok := p.duplicate(); ok {
		return p, fmt.Errorf("%w: %s", ErrDuplicateTicker, ticker)
	}

	switch v := t.(type) {
	case Buy:
		return settle(v.Ticker, v.Shares, v.Price, v.Commission, v.Date, Q(1), cashTicker, pricer, p)
	case Sell:
		return settle(v.Ticker, v.Shares, v.Price, v.Commission, v.Date, Q(-1), cashTicker, pricer, p)
	case Deposit:
		return upsertShares(cashTicker, v.Amount, p).dropZero(), nil
	case Withdrawal:
		return upsertShares(cashTicker, v.Amount.Neg(), p).dropZero(), nil
	default:
		return p, fmt.Errorf("unsupported trade type for application: %T %v", t, t)
	}
}

// settle applies the two legs of a buy or a sell. sign is +1 for a buy and
// -1 for a sell.
//
// The share leg always lands first: when ticker and cashTicker name the same
// row, the cash leg applies on top of the already updated share leg, last
// write wins.
func settle(ticker string, shares Quantity, price, commission Money, on Date, sign Quantity, cashTicker string, pricer Pricer, p Portfolio) (Portfolio, error) {
	cashPrice := pricer(cashTicker, on)
	if !cashPrice.IsPositive() {
		return p, fmt.Errorf("%w: pricer(%s, %s) returned %s", ErrCashPrice, cashTicker, on, cashPrice)
	}

	// Share leg.
	next := upsertShares(ticker, shares.Mul(sign), p)

	// Cash leg. The commission converts to cash-ticker units through the
	// same cash price as the principal.
	principal := price.Mul(shares).DivPrice(cashPrice)
	fee := commission.DivPrice(cashPrice)
	cashDelta := principal.Add(fee.Mul(sign))
	next = upsertShares(cashTicker, cashDelta.Mul(sign).Neg(), next)

	return next.dropZero(), nil
}

// upsertShares adds delta to the ticker's position, creating the position
// when absent.
func upsertShares(ticker string, delta Quantity, p Portfolio) Portfolio {
	matches := func(pos Position) bool { return pos.Ticker == ticker }
	update := func(pos Position) Position { return Position{Ticker: ticker, Shares: pos.Shares.Add(delta)} }
	def := Position{Ticker: ticker, Shares: delta}
	return Portfolio{positions: addOrReplace(matches, update, def, p.positions)}
}

// CalcPortValue prices every position on the given date and returns the sum.
// An empty portfolio values to zero. The portfolio is neither mutated nor
// reordered, and the result is deterministic for a deterministic pricer.
func CalcPortValue(pricer Pricer, on Date, p Portfolio) Money {
	var total Money
	for pos := range p.Positions() {
		total = total.Add(pricer(pos.Ticker, on).Mul(pos.Shares))
	}
	return total
}

// Fold applies trades left to right over the empty portfolio and returns the
// final snapshot. Each step feeds the next, so a failing step stops the fold
// and reports which trade broke it.
func Fold(trades iter.Seq[Trade], cashTicker string, pricer Pricer) (Portfolio, error) {
	var p Portfolio
	var err error
	for t := range trades {
		p, err = AddTrade(t, cashTicker, pricer, p)
		if err != nil {
			return p, fmt.Errorf("applying %s trade on %s: %w", t.What(), t.When(), err)
		}
	}
	return p, nil
}

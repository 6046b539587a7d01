package folio

import (
	"encoding/json"
	"iter"
	"maps"
	"slices"
)

// PricePoint is a single quote: the price of one share of a ticker on a date.
type PricePoint struct {
	Date   Date   // Date is the day the quote applies from.
	Ticker string // Ticker is the symbol the quote is for.
	Price  Money  // Price is the value of one share on that day.
}

// MarshalJSON implements the json.Marshaler interface for PricePoint.
func (p PricePoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", p.Date)
	w.Append("ticker", p.Ticker)
	w.Append("price", p.Price.value)
	w.Optional("currency", p.Price.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for PricePoint.
// It handles the custom structure where price and currency are separate fields.
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		priceCmd
		Date   Date   `json:"date"`
		Ticker string `json:"ticker"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	p.Date = temp.Date
	p.Ticker = temp.Ticker
	p.Price = temp.PriceMoney()
	return nil
}

// quote is a dated price within a ticker's history.
type quote struct {
	date  Date
	price Money
}

// PriceTable stores quoted prices per ticker and serves them back with
// last-on-or-before semantics: asking for a date between two quotes returns
// the earlier one, asking before the first quote returns nothing.
//
// The zero value is an empty table ready to use.
type PriceTable struct {
	quotes map[string][]quote // per ticker, sorted by date
}

// NewPriceTable creates an empty price table.
func NewPriceTable() *PriceTable {
	return &PriceTable{quotes: make(map[string][]quote)}
}

// Add records a price for ticker on a date, replacing any price already
// recorded for that exact date.
func (t *PriceTable) Add(ticker string, on Date, price Money) {
	if t.quotes == nil {
		t.quotes = make(map[string][]quote)
	}
	points := t.quotes[ticker]
	i, found := slices.BinarySearchFunc(points, on, func(q quote, d Date) int {
		return q.date.Compare(d)
	})
	if found {
		points[i].price = price
	} else {
		points = slices.Insert(points, i, quote{date: on, price: price})
	}
	t.quotes[ticker] = points
}

// Price returns the last price recorded for ticker on or before the given
// date, and whether such a quote exists.
func (t *PriceTable) Price(ticker string, on Date) (Money, bool) {
	points := t.quotes[ticker]
	i, found := slices.BinarySearchFunc(points, on, func(q quote, d Date) int {
		return q.date.Compare(d)
	})
	if found {
		return points[i].price, true
	}
	if i == 0 {
		return Money{}, false
	}
	return points[i-1].price, true
}

// Latest returns the most recent quote recorded for ticker.
func (t *PriceTable) Latest(ticker string) (Date, Money, bool) {
	points := t.quotes[ticker]
	if len(points) == 0 {
		return Date{}, Money{}, false
	}
	last := points[len(points)-1]
	return last.date, last.price, true
}

// Tickers returns an iterator over the quoted tickers in lexical order.
func (t *PriceTable) Tickers() iter.Seq[string] {
	return func(yield func(string) bool) {
		tickers := slices.Collect(maps.Keys(t.quotes))
		slices.Sort(tickers)
		for _, ticker := range tickers {
			if !yield(ticker) {
				return
			}
		}
	}
}

// All returns an iterator over every quote, tickers in lexical order and
// dates ascending within a ticker.
func (t *PriceTable) All() iter.Seq[PricePoint] {
	return func(yield func(PricePoint) bool) {
		for ticker := range t.Tickers() {
			for _, q := range t.quotes[ticker] {
				if !yield(PricePoint{Date: q.date, Ticker: ticker, Price: q.price}) {
					return
				}
			}
		}
	}
}

// Pricer adapts the table to the Pricer function the fold consumes. A ticker
// with no quote on or before the date prices at zero; a zero price used as a
// cash divisor then surfaces as ErrCashPrice instead of propagating silently.
func (t *PriceTable) Pricer() Pricer {
	return func(ticker string, on Date) Money {
		price, _ := t.Price(ticker, on)
		return price
	}
}

// CashAware decorates a pricer so the cash ticker quotes at one unit of the
// given currency when no explicit quote overrides it. Other tickers keep
// pricing at zero when unquoted, which the fold reports as an invalid cash
// price only where it matters.
func CashAware(p Pricer, cashTicker, currency string) Pricer {
	unit := M(1, currency)
	return func(ticker string, on Date) Money {
		if price := p(ticker, on); !price.IsZero() {
			return price
		}
		if ticker == cashTicker {
			return unit
		}
		return Money{}
	}
}

// UnitPricer returns a pricer quoting one unit of the given currency for
// every ticker on every date. It prices a pure cash book, and it is the
// simplest pricer that can value a portfolio.
func UnitPricer(currency string) Pricer {
	one := M(1, currency)
	return func(string, Date) Money { return one }
}

// FixedPricer returns a pricer quoting from a fixed set regardless of the
// date. Tickers absent from quotes price at zero.
func FixedPricer(quotes map[string]Money) Pricer {
	return func(ticker string, _ Date) Money { return quotes[ticker] }
}

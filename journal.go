package folio

import (
	"iter"
	"sort"
)

// Journal represents an append-only list of trades.
//
// In a Journal trades are always in chronological order.
type Journal struct {
	trades []Trade
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{trades: make([]Trade, 0)}
}

// Append appends trades to this journal and maintains the chronological order of trades.
func (j *Journal) Append(trades ...Trade) {
	j.trades = append(j.trades, trades...)
	j.stableSort()
}

// Len returns the number of trades recorded in the journal.
func (j *Journal) Len() int { return len(j.trades) }

// Trades returns an iterator that yields each trade in chronological order.
// When filters are given, only trades accepted by at least one filter are
// yielded.
func (j *Journal) Trades(filters ...func(Trade) bool) iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range j.trades {
			if !accepts(filters, t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// accepts reports whether t passes at least one filter. No filter accepts all.
func accepts(filters []func(Trade) bool, t Trade) bool {
	if len(filters) == 0 {
		return true
	}
	for _, filter := range filters {
		if filter(t) {
			return true
		}
	}
	return false
}

// Portfolio folds the whole journal, oldest trade first, and returns the
// resulting snapshot.
func (j *Journal) Portfolio(cashTicker string, pricer Pricer) (Portfolio, error) {
	return Fold(j.Trades(), cashTicker, pricer)
}

// stableSort sorts the journal by trade date. The sort is stable, meaning
// trades on the same day maintain their original relative order.
func (j *Journal) stableSort() {
	sort.SliceStable(j.trades, func(i, k int) bool {
		return j.trades[i].When().Before(j.trades[k].When())
	})
}

// OldestTradeDate returns the date of the earliest trade in the journal, or
// the zero date if the journal is empty.
func (j *Journal) OldestTradeDate() Date {
	if len(j.trades) == 0 {
		return Date{}
	}
	return j.trades[0].When()
}

// NewestTradeDate returns the date of the latest trade in the journal, or
// the zero date if the journal is empty.
func (j *Journal) NewestTradeDate() Date {
	if len(j.trades) == 0 {
		return Date{}
	}
	return j.trades[len(j.trades)-1].When()
}

// ByTicker returns a predicate that filters trades by security ticker.
func ByTicker(ticker string) func(Trade) bool {
	return func(t Trade) bool {
		switch v := t.(type) {
		case Buy:
			return v.Ticker == ticker
		case Sell:
			return v.Ticker == ticker
		default:
			return false
		}
	}
}

// ByKind returns a predicate that filters trades by kind.
func ByKind(kind Kind) func(Trade) bool {
	return func(t Trade) bool { return t.What() == kind }
}

// ByRange returns a predicate that filters trades dated within r, boundaries
// included.
func ByRange(r Range) func(Trade) bool {
	return func(t Trade) bool { return r.Contains(t.When()) }
}

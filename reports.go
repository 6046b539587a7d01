package folio

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HoldingsReport is the detailed view of the folded portfolio: one line per
// position, priced on the report date. The fold consumes the whole journal;
// the date only selects the prices.
type HoldingsReport struct {
	Date       Date          `json:"date"`
	CashTicker string        `json:"cashTicker"`
	Lines      []HoldingLine `json:"lines"`
	TotalValue Money         `json:"totalValue"`
}

// HoldingLine is a single position of the report.
type HoldingLine struct {
	Ticker      string   `json:"ticker"`
	Shares      Quantity `json:"shares"`
	Price       Money    `json:"price"`
	MarketValue Money    `json:"marketValue"`
}

// NewHoldingsReport folds the journal into a portfolio and prices every
// position on the given date.
func NewHoldingsReport(journal *Journal, cashTicker string, pricer Pricer, on Date) (*HoldingsReport, error) {
	p, err := journal.Portfolio(cashTicker, pricer)
	if err != nil {
		return nil, fmt.Errorf("could not fold the journal: %w", err)
	}

	report := &HoldingsReport{
		Date:       on,
		CashTicker: cashTicker,
		Lines:      make([]HoldingLine, 0, p.Len()),
		TotalValue: CalcPortValue(pricer, on, p),
	}
	for ticker := range p.Tickers() {
		shares, _ := p.Get(ticker)
		price := pricer(ticker, on)
		report.Lines = append(report.Lines, HoldingLine{
			Ticker:      ticker,
			Shares:      shares,
			Price:       price,
			MarketValue: price.Mul(shares),
		})
	}
	return report, nil
}

// HistoryReport revalues the folded portfolio across a period, one entry per
// day. It never refolds: the positions are those of the full journal, only
// the pricing date moves. An optional ticker narrows the report to a single
// position.
type HistoryReport struct {
	Ticker     string         `json:"ticker,omitempty"`
	CashTicker string         `json:"cashTicker"`
	Period     Range          `json:"period"`
	Entries    []HistoryEntry `json:"entries"`
}

// HistoryEntry is the valuation on a single day.
type HistoryEntry struct {
	Date   Date     `json:"date"`
	Shares Quantity `json:"shares"`
	Price  Money    `json:"price"`
	Value  Money    `json:"value"`
}

// NewHistoryReport folds the journal once and values the result on every day
// of the period.
func NewHistoryReport(journal *Journal, cashTicker string, pricer Pricer, ticker string, period Range) (*HistoryReport, error) {
	p, err := journal.Portfolio(cashTicker, pricer)
	if err != nil {
		return nil, fmt.Errorf("could not fold the journal: %w", err)
	}

	report := &HistoryReport{
		Ticker:     ticker,
		CashTicker: cashTicker,
		Period:     period,
	}
	for on := range period.Days() {
		var entry HistoryEntry
		if ticker != "" {
			shares, _ := p.Get(ticker)
			price := pricer(ticker, on)
			entry = HistoryEntry{Date: on, Shares: shares, Price: price, Value: price.Mul(shares)}
		} else {
			entry = HistoryEntry{Date: on, Value: CalcPortValue(pricer, on, p)}
		}
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

// HistorySummary condenses a history report into descriptive statistics.
type HistorySummary struct {
	Mean   Money   `json:"mean"`
	StdDev Money   `json:"stdDev"`
	Min    Money   `json:"min"`
	Max    Money   `json:"max"`
	Return float64 `json:"return"` // (last - first) / first, as a ratio
}

// Summary computes descriptive statistics over the entry values.
func (r *HistoryReport) Summary() HistorySummary {
	if len(r.Entries) == 0 {
		return HistorySummary{}
	}

	values := make([]float64, len(r.Entries))
	currency := ""
	for i, entry := range r.Entries {
		values[i] = entry.Value.AsFloat()
		if currency == "" {
			currency = entry.Value.Currency()
		}
	}

	s := HistorySummary{
		Mean:   M(stat.Mean(values, nil), currency),
		StdDev: M(0, currency),
		Min:    M(floats.Min(values), currency),
		Max:    M(floats.Max(values), currency),
	}
	if len(values) > 1 {
		s.StdDev = M(stat.StdDev(values, nil), currency)
	}
	if first, last := values[0], values[len(values)-1]; first != 0 {
		s.Return = (last - first) / first
	}
	return s
}

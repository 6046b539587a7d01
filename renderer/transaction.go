package renderer

import (
	"bytes"
	"fmt"
	"iter"

	md "github.com/nao1215/markdown"

	"github.com/hmelse/folio"
)

// Trade renders a trade to a one-line string.
func Trade(t folio.Trade) string {
	switch v := t.(type) {
	case folio.Buy:
		return fmt.Sprintf("Bought %s %s at %s", v.Shares, v.Ticker, v.Price)
	case folio.Sell:
		return fmt.Sprintf("Sold %s %s at %s", v.Shares, v.Ticker, v.Price)
	case folio.Deposit:
		return fmt.Sprintf("Deposited %s", v.Amount)
	case folio.Withdrawal:
		return fmt.Sprintf("Withdrew %s", v.Amount)
	default:
		return string(t.What())
	}
}

// TradesMarkdown renders a sequence of trades as a markdown table, one row
// per trade in sequence order.
func TradesMarkdown(trades iter.Seq[folio.Trade]) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trades")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Date", "Trade", "Memo"},
		Rows:   [][]string{},
	}
	for t := range trades {
		memo := ""
		if r, ok := t.(interface{ Rationale() string }); ok {
			memo = r.Rationale()
		}
		table.Rows = append(table.Rows, []string{t.When().String(), Trade(t), memo})
	}
	doc.Table(table)

	return doc.String()
}

package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/hmelse/folio"
)

// ValueMarkdown renders a compact valuation of the portfolio: one row per
// position value, without the share and price detail of the holdings report.
func ValueMarkdown(r *folio.HoldingsReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Value on %s", r.Date))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Ticker", "Value"},
		Rows:   [][]string{},
	}
	for _, line := range r.Lines {
		table.Rows = append(table.Rows, []string{line.Ticker, line.MarketValue.String()})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(r.TotalValue.String())})
	doc.Table(table)

	return doc.String()
}

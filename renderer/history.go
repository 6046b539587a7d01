package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/hmelse/folio"
)

// HistoryMarkdown renders the day-by-day valuation of a history report,
// followed by its summary statistics.
func HistoryMarkdown(r *folio.HistoryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.Ticker != "" {
		doc.H1(fmt.Sprintf("History for %s", r.Ticker))
	} else {
		doc.H1(fmt.Sprintf("Portfolio History from %s to %s", r.Period.From, r.Period.To))
	}

	if r.Ticker != "" {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Date", "Shares", "Price", "Value"},
			Rows:   [][]string{},
		}
		for _, entry := range r.Entries {
			table.Rows = append(table.Rows, []string{
				entry.Date.String(),
				entry.Shares.String(),
				entry.Price.String(),
				entry.Value.String(),
			})
		}
		doc.Table(table)
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
			},
			Header: []string{"Date", "Value"},
			Rows:   [][]string{},
		}
		for _, entry := range r.Entries {
			table.Rows = append(table.Rows, []string{
				entry.Date.String(),
				entry.Value.String(),
			})
		}
		doc.Table(table)
	}

	summary := r.Summary()
	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Mean", summary.Mean.String()},
			{"Std Dev", summary.StdDev.String()},
			{"Min", summary.Min.String()},
			{"Max", summary.Max.String()},
			{"Return", fmt.Sprintf("%+.2f%%", summary.Return*100)},
		},
	})

	return doc.String()
}

package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hmelse/folio"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// HistoryChart renders a PNG line chart of the report's value over time.
// Returns raw PNG bytes.
func HistoryChart(r *folio.HistoryReport) ([]byte, error) {
	if len(r.Entries) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(r.Entries))
	}

	title := "Portfolio Value"
	if r.Ticker != "" {
		title = r.Ticker + " Value"
	}

	xValues := make([]time.Time, len(r.Entries))
	yValues := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		xValues[i] = e.Date.Time()
		yValues[i] = e.Value.AsFloat()
	}

	series := chart.TimeSeries{
		Name: title,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("2006-01-02")
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

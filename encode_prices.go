package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// DecodePrices reads quotes from a stream of JSONL data and returns the
// resulting price table. Quotes repeated for the same ticker and date keep
// the last value read.
func DecodePrices(r io.Reader) (*PriceTable, error) {
	table := NewPriceTable()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var point PricePoint
		if err := json.Unmarshal(lineBytes, &point); err != nil {
			return nil, fmt.Errorf("could not decode price line %q: %w", string(lineBytes), err)
		}
		if point.Ticker == "" {
			return nil, fmt.Errorf("price line %q has no ticker", string(lineBytes))
		}
		table.Add(point.Ticker, point.Date, point.Price)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	return table, nil
}

// EncodePricePoint marshals a single quote to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodePricePoint(w io.Writer, point PricePoint) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("failed to marshal price point: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write price point: %w", err)
	}
	return nil
}

// EncodePrices persists the whole table to an io.Writer in JSONL format,
// tickers in lexical order and dates ascending within a ticker, so the
// output is canonical for a given table.
func EncodePrices(w io.Writer, table *PriceTable) error {
	decimal.MarshalJSONWithoutQuotes = true

	for point := range table.All() {
		if err := EncodePricePoint(w, point); err != nil {
			return err
		}
	}

	return nil
}

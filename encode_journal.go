package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// priceCmd is a specialized struct to read a per-share price and a commission
// that share a single currency field. We could have used json "inline" but it
// would work for some trades not all.
type priceCmd struct {
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	Currency   string          `json:"currency"`
}

// PriceMoney returns the price field as Money. A field absent from the line
// decodes to the zero Money, not to a currency-tagged zero.
func (a priceCmd) PriceMoney() Money {
	if a.Price == (decimal.Decimal{}) {
		return Money{}
	}
	return M(a.Price, a.Currency)
}

// CommissionMoney returns the commission field as Money, with the same
// absent-field convention as PriceMoney.
func (a priceCmd) CommissionMoney() Money {
	if a.Commission == (decimal.Decimal{}) {
		return Money{}
	}
	return M(a.Commission, a.Currency)
}

// DecodeJournal reads trades from a stream of JSONL data, decodes each line
// into the appropriate trade struct, and returns a sorted Journal.
func DecodeJournal(r io.Reader) (*Journal, error) {
	journal := NewJournal()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind Kind `json:"kind"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify trade kind in line %q: %w", string(lineBytes), err)
		}

		var decoded Trade
		var err error

		switch identifier.Kind {
		case KindBuy:
			var t Buy
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		case KindSell:
			var t Sell
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		case KindDeposit:
			var t Deposit
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		case KindWithdraw:
			var t Withdrawal
			err = json.Unmarshal(lineBytes, &t)
			decoded = t
		default:
			err = fmt.Errorf("unknown trade kind: %q", identifier.Kind)
		}

		if err != nil {
			return nil, err
		}
		journal.Append(decoded)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	return journal, nil
}

// EncodeTrade marshals a single trade to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeTrade(w io.Writer, t Trade) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal trade: %w", err)
	}

	// Write the JSON data followed by a newline to create the JSONL format.
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write trade: %w", err)
	}
	return nil
}

// EncodeJournal reorders trades by date and persists them to an io.Writer in
// JSONL format. The sort is stable, meaning trades on the same day maintain
// their original relative order.
func EncodeJournal(w io.Writer, journal *Journal) error {
	decimal.MarshalJSONWithoutQuotes = true

	// Perform a stable sort on the journal based on the trade date to ensure order.
	journal.stableSort()

	for _, t := range journal.trades {
		if err := EncodeTrade(w, t); err != nil {
			return err
		}
	}

	return nil
}

package folio

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDecodeJournal(t *testing.T) {
	// A multi-line string representing a JSONL stream with all trade kinds.
	jsonlStream := `
{"kind":"buy","date":"2025-08-01","ticker":"AAPL","shares":10,"price":195.5,"commission":1.5,"currency":"USD"}
{"kind":"deposit","date":"2025-08-02","amount":5000}
{"kind":"sell","date":"2025-08-02","ticker":"GOOG","shares":5,"price":140.2,"currency":"USD"}
{"kind":"withdraw","date":"2025-08-04","amount":1000}
`
	reader := strings.NewReader(jsonlStream)

	journal, err := DecodeJournal(reader)

	// 1. Check for unexpected errors
	if err != nil {
		t.Fatalf("DecodeJournal() returned an unexpected error: %v", err)
	}

	// 2. Check the number of trades decoded
	expectedCount := 4
	if journal.Len() != expectedCount {
		t.Fatalf("DecodeJournal() decoded wrong number of trades. Got: %d, want: %d", journal.Len(), expectedCount)
	}

	// 3. Check each decoded trade against its expected value
	expectedTrades := []Trade{
		NewBuy(NewDate(2025, time.August, 1), "", "AAPL", Q(10), M(195.5, "USD"), M(1.5, "USD")),
		NewDeposit(NewDate(2025, time.August, 2), "", Q(5000)),
		NewSell(NewDate(2025, time.August, 2), "", "GOOG", Q(5), M(140.2, "USD"), Money{}),
		NewWithdrawal(NewDate(2025, time.August, 4), "", Q(1000)),
	}

	i := 0
	for trade := range journal.Trades() {
		if reflect.TypeOf(trade) != reflect.TypeOf(expectedTrades[i]) {
			t.Errorf("Trade %d has wrong type. Got: %T, want: %T", i+1, trade, expectedTrades[i])
		} else if !trade.Equal(expectedTrades[i]) {
			t.Errorf("Trade %d is incorrect.\nGot:  %+v\nWant: %+v", i+1, trade, expectedTrades[i])
		}
		i++
	}
}

func TestDecodeJournal_UnknownKind(t *testing.T) {
	_, err := DecodeJournal(strings.NewReader(`{"kind":"dividend","date":"2025-08-01"}`))
	if err == nil || !strings.Contains(err.Error(), "unknown trade kind") {
		t.Errorf("DecodeJournal() error = %v, want an unknown kind error", err)
	}
}

func TestEncodeTrade(t *testing.T) {
	// Field order is canonical so journals diff cleanly under version control.
	tests := []struct {
		name     string
		trade    Trade
		expected string
	}{
		{
			name:     "buy",
			trade:    NewBuy(NewDate(2025, time.August, 1), "", "AAPL", Q(10), M(195.5, "USD"), M(1.5, "USD")),
			expected: `{"kind":"buy","date":"2025-08-01","ticker":"AAPL","shares":10,"price":195.5,"commission":1.5,"currency":"USD"}`,
		},
		{
			name:     "sell with memo and no commission",
			trade:    NewSell(NewDate(2025, time.August, 2), "take profits", "GOOG", Q(5), M(140.2, "USD"), Money{}),
			expected: `{"kind":"sell","date":"2025-08-02","memo":"take profits","ticker":"GOOG","shares":5,"price":140.2,"currency":"USD"}`,
		},
		{
			name:     "deposit",
			trade:    NewDeposit(NewDate(2025, time.August, 2), "", Q(5000)),
			expected: `{"kind":"deposit","date":"2025-08-02","amount":5000}`,
		},
		{
			name:     "withdrawal",
			trade:    NewWithdrawal(NewDate(2025, time.August, 4), "rent", Q(1000)),
			expected: `{"kind":"withdraw","date":"2025-08-04","memo":"rent","amount":1000}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if err := EncodeTrade(&buffer, tt.trade); err != nil {
				t.Fatalf("EncodeTrade() returned an unexpected error: %v", err)
			}
			if got := strings.TrimSuffix(buffer.String(), "\n"); got != tt.expected {
				t.Errorf("EncodeTrade() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestEncodeJournal(t *testing.T) {
	// 1. Arrange: Create test data in a deliberately unsorted order.
	// Note that t2 and t3 have the same date. Their relative order must be preserved.
	t1 := NewBuy(NewDate(2025, time.August, 3), "", "AAPL", Q(1), M(200, "USD"), Money{})
	t2 := NewDeposit(NewDate(2025, time.August, 1), "", Q(1000))
	t3 := NewSell(NewDate(2025, time.August, 1), "", "GOOG", Q(2), M(140, "USD"), Money{}) // Same date as t2

	journal := &Journal{
		trades: []Trade{
			t1, // Should be last
			t2, // Should be first
			t3, // Should be second (stable sort)
		},
	}

	// Manually sort the trades to build the expected output string.
	expectedOrder := []Trade{t2, t3, t1}
	var expectedOutputBuffer bytes.Buffer
	for _, trade := range expectedOrder {
		if err := EncodeTrade(&expectedOutputBuffer, trade); err != nil {
			t.Fatalf("Failed to encode expected trade: %v", err)
		}
	}

	var buffer bytes.Buffer

	// 2. Act: Call the encode function.
	err := EncodeJournal(&buffer, journal)

	// 3. Assert: Check the results.
	if err != nil {
		t.Fatalf("EncodeJournal() returned an unexpected error: %v", err)
	}

	if got := buffer.String(); got != expectedOutputBuffer.String() {
		t.Errorf("EncodeJournal() produced incorrect output.\nGot:\n%s\nWant:\n%s", got, expectedOutputBuffer.String())
	}
}

// TestJournalRoundTrip verifies that an encoded journal decodes back to the
// same trades.
func TestJournalRoundTrip(t *testing.T) {
	journal := NewJournal()
	journal.Append(
		NewDeposit(NewDate(2025, time.August, 1), "seed", Q(10000)),
		NewBuy(NewDate(2025, time.August, 2), "", "MSFT", Q(100), M(2, "USD"), M(4, "USD")),
		NewSell(NewDate(2025, time.August, 3), "", "MSFT", Q(100), M(2, "USD"), M(4, "USD")),
		NewWithdrawal(NewDate(2025, time.August, 4), "", Q(500)),
	)

	var buffer bytes.Buffer
	if err := EncodeJournal(&buffer, journal); err != nil {
		t.Fatalf("EncodeJournal() returned an unexpected error: %v", err)
	}

	decoded, err := DecodeJournal(&buffer)
	if err != nil {
		t.Fatalf("DecodeJournal() returned an unexpected error: %v", err)
	}

	if decoded.Len() != journal.Len() {
		t.Fatalf("round trip changed the number of trades. Got: %d, want: %d", decoded.Len(), journal.Len())
	}
	for i := range journal.trades {
		if !journal.trades[i].Equal(decoded.trades[i]) {
			t.Errorf("Trade %d did not survive the round trip.\nGot:  %+v\nWant: %+v", i, decoded.trades[i], journal.trades[i])
		}
	}
}

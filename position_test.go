package folio

import (
	"slices"
	"testing"
)

func TestPortfolio_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Portfolio
		expected bool
	}{
		{
			name:     "both empty",
			a:        Portfolio{},
			b:        NewPortfolio(),
			expected: true,
		},
		{
			name: "same positions, same order",
			a: NewPortfolio(
				Position{Ticker: "MSFT", Shares: Q(100)},
				Position{Ticker: "CASH", Shares: Q(9796)},
			),
			b: NewPortfolio(
				Position{Ticker: "MSFT", Shares: Q(100)},
				Position{Ticker: "CASH", Shares: Q(9796)},
			),
			expected: true,
		},
		{
			name: "same positions, different order",
			a: NewPortfolio(
				Position{Ticker: "MSFT", Shares: Q(100)},
				Position{Ticker: "CASH", Shares: Q(9796)},
			),
			b: NewPortfolio(
				Position{Ticker: "CASH", Shares: Q(9796)},
				Position{Ticker: "MSFT", Shares: Q(100)},
			),
			expected: true,
		},
		{
			name: "equal decimals in different representations",
			a:    NewPortfolio(Position{Ticker: "CASH", Shares: Q(100)}),
			b:    NewPortfolio(Position{Ticker: "CASH", Shares: Q(100.0)}),
			expected: true,
		},
		{
			name:     "different shares",
			a:        NewPortfolio(Position{Ticker: "CASH", Shares: Q(100)}),
			b:        NewPortfolio(Position{Ticker: "CASH", Shares: Q(101)}),
			expected: false,
		},
		{
			name:     "different tickers",
			a:        NewPortfolio(Position{Ticker: "CASH", Shares: Q(100)}),
			b:        NewPortfolio(Position{Ticker: "MSFT", Shares: Q(100)}),
			expected: false,
		},
		{
			name:     "different sizes",
			a:        NewPortfolio(Position{Ticker: "CASH", Shares: Q(100)}),
			b:        Portfolio{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
			// Equality is symmetric.
			if got := tt.b.Equal(tt.a); got != tt.expected {
				t.Errorf("Equal() reversed = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPortfolio_Get(t *testing.T) {
	p := NewPortfolio(
		Position{Ticker: "MSFT", Shares: Q(100)},
		Position{Ticker: "CASH", Shares: Q(9796)},
	)

	shares, ok := p.Get("MSFT")
	if !ok || !shares.Equal(Q(100)) {
		t.Errorf("Get(MSFT) = %v, %v, want 100, true", shares, ok)
	}
	if _, ok := p.Get("AAPL"); ok {
		t.Errorf("Get(AAPL) = _, true, want false")
	}
}

func TestPortfolio_Tickers(t *testing.T) {
	p := NewPortfolio(
		Position{Ticker: "MSFT", Shares: Q(100)},
		Position{Ticker: "AAPL", Shares: Q(5)},
		Position{Ticker: "CASH", Shares: Q(9796)},
	)

	got := slices.Collect(p.Tickers())
	want := []string{"AAPL", "CASH", "MSFT"}
	if !slices.Equal(got, want) {
		t.Errorf("Tickers() = %v, want %v", got, want)
	}
}

func TestPortfolio_String(t *testing.T) {
	p := NewPortfolio(
		Position{Ticker: "MSFT", Shares: Q(100)},
		Position{Ticker: "CASH", Shares: Q(9796)},
	)

	if got, want := p.String(), "{CASH: 9796, MSFT: 100}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := (Portfolio{}).String(), "{}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPortfolio_DropZero(t *testing.T) {
	p := NewPortfolio(
		Position{Ticker: "MSFT", Shares: Q(0)},
		Position{Ticker: "CASH", Shares: Q(9796)},
		Position{Ticker: "AAPL", Shares: Q(0)},
	)

	got := p.dropZero()
	want := NewPortfolio(Position{Ticker: "CASH", Shares: Q(9796)})
	if !got.Equal(want) {
		t.Errorf("dropZero() = %v, want %v", got, want)
	}
}

func TestPortfolio_Duplicate(t *testing.T) {
	clean := NewPortfolio(
		Position{Ticker: "MSFT", Shares: Q(100)},
		Position{Ticker: "CASH", Shares: Q(9796)},
	)
	if ticker, ok := clean.duplicate(); ok {
		t.Errorf("duplicate() = %q, true on a clean portfolio", ticker)
	}

	corrupted := NewPortfolio(
		Position{Ticker: "MSFT", Shares: Q(100)},
		Position{Ticker: "MSFT", Shares: Q(1)},
	)
	if ticker, ok := corrupted.duplicate(); !ok || ticker != "MSFT" {
		t.Errorf("duplicate() = %q, %v, want MSFT, true", ticker, ok)
	}
}

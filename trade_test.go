package folio

import (
	"strings"
	"testing"
)

func TestTrade_Validate(t *testing.T) {
	day := NewDate(2025, 1, 7)

	tests := []struct {
		name    string
		trade   Trade
		wantErr string // substring of the expected error, empty for no error
	}{
		{
			name:  "valid buy",
			trade: NewBuy(day, "", "MSFT", Q(100), M(2, "USD"), M(4, "USD")),
		},
		{
			name:  "valid sell without commission",
			trade: NewSell(day, "", "MSFT", Q(100), M(2, "USD"), Money{}),
		},
		{
			name:  "valid deposit",
			trade: NewDeposit(day, "initial funding", Q(10000)),
		},
		{
			name:  "valid withdrawal",
			trade: NewWithdrawal(day, "", Q(500)),
		},
		{
			name:    "buy without ticker",
			trade:   NewBuy(day, "", "", Q(100), M(2, "USD"), Money{}),
			wantErr: "ticker is missing",
		},
		{
			name:    "buy with zero shares",
			trade:   NewBuy(day, "", "MSFT", Q(0), M(2, "USD"), Money{}),
			wantErr: "shares must be positive",
		},
		{
			name:    "buy with negative price",
			trade:   NewBuy(day, "", "MSFT", Q(100), M(-2, "USD"), Money{}),
			wantErr: "price must be positive",
		},
		{
			name:    "buy with negative commission",
			trade:   NewBuy(day, "", "MSFT", Q(100), M(2, "USD"), M(-4, "USD")),
			wantErr: "commission cannot be negative",
		},
		{
			name:    "sell with negative shares",
			trade:   NewSell(day, "", "MSFT", Q(-100), M(2, "USD"), Money{}),
			wantErr: "shares must be positive",
		},
		{
			name:    "deposit with zero amount",
			trade:   NewDeposit(day, "", Q(0)),
			wantErr: "amount must be positive",
		},
		{
			name:    "withdrawal with negative amount",
			trade:   NewWithdrawal(day, "", Q(-500)),
			wantErr: "amount must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.trade.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() returned an unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestTrade_ValidateDefaultsDate(t *testing.T) {
	fixed, err := NewDeposit(Date{}, "", Q(100)).Validate()
	if err != nil {
		t.Fatalf("Validate() returned an unexpected error: %v", err)
	}
	if fixed.When() != Today() {
		t.Errorf("Validate() date = %v, want today", fixed.When())
	}
}

func TestTrade_Equal(t *testing.T) {
	day := NewDate(2025, 1, 7)
	buy := NewBuy(day, "memo", "MSFT", Q(100), M(2, "USD"), M(4, "USD"))

	tests := []struct {
		name     string
		other    Trade
		expected bool
	}{
		{"same trade", NewBuy(day, "memo", "MSFT", Q(100), M(2, "USD"), M(4, "USD")), true},
		{"different shares", NewBuy(day, "memo", "MSFT", Q(10), M(2, "USD"), M(4, "USD")), false},
		{"different date", NewBuy(day.Add(1), "memo", "MSFT", Q(100), M(2, "USD"), M(4, "USD")), false},
		{"different commission", NewBuy(day, "memo", "MSFT", Q(100), M(2, "USD"), Money{}), false},
		{"different kind entirely", NewSell(day, "memo", "MSFT", Q(100), M(2, "USD"), M(4, "USD")), false},
		{"deposit is never a buy", NewDeposit(day, "memo", Q(100)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buy.Equal(tt.other); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTrade_DepositPriceIsInert(t *testing.T) {
	// The price field on deposits and withdrawals is bookkeeping only: two
	// deposits differing only by price compare different, but they fold to
	// the same portfolio.
	day := NewDate(2025, 1, 6)
	plain := NewDeposit(day, "", Q(10000))
	priced := plain
	priced.Price = M(1, "USD")

	if plain.Equal(priced) {
		t.Errorf("Equal() ignored the price field")
	}

	a, err := AddTrade(plain, "CASH", usdPricer, Portfolio{})
	if err != nil {
		t.Fatalf("AddTrade() returned an unexpected error: %v", err)
	}
	b, err := AddTrade(priced, "CASH", usdPricer, Portfolio{})
	if err != nil {
		t.Fatalf("AddTrade() returned an unexpected error: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("AddTrade() read the inert price field: %v != %v", a, b)
	}
}

package folio

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is a typed string for identifying trade commands.
type Kind string

// Trade kinds used for identifying journal lines.
const (
	KindBuy      Kind = "buy"
	KindSell     Kind = "sell"
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
)

// Trade defines the common interface for the four kinds of events that can
// move shares or cash in a portfolio. The set is closed: AddTrade dispatches
// exhaustively over Buy, Sell, Deposit and Withdrawal.
type Trade interface {
	What() Kind // What returns the kind of the trade (e.g., "buy", "sell").
	When() Date // When returns the date on which the trade occurred.
	Equal(Trade) bool
	Validate() (Trade, error)
}

type baseCmd struct {
	Kind Kind   `json:"kind"`           // Kind specifies the type of trade (e.g., "buy", "sell").
	Date Date   `json:"date"`           // Date is the date when the trade took place.
	Memo string `json:"memo,omitempty"` // Memo provides an optional rationale or note for the trade.
}

// What returns the kind of the trade, which is used to identify the type of trade.
func (t baseCmd) What() Kind {
	return t.Kind
}

// When returns the date of the trade.
func (t baseCmd) When() Date {
	return t.Date
}

// Rationale returns the memo associated with the trade, which can provide additional context or rationale.
func (t baseCmd) Rationale() string {
	return t.Memo
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", t.Kind)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It sets the date to today if it's zero.
// It's meant to be embedded in other trade validation methods.
func (t *baseCmd) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
}

// tickerCmd is a component for share-based trades (buy, sell).
type tickerCmd struct {
	baseCmd
	Ticker string `json:"ticker"` // Ticker is the symbol of the security involved in the trade.
}

// Validate checks the ticker command fields. It validates the base command
// and ensures a ticker is present.
func (t *tickerCmd) Validate() error {
	t.baseCmd.Validate()

	if t.Ticker == "" {
		return errors.New("ticker is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for tickerCmd.
func (t tickerCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("ticker", t.Ticker)
	return w.MarshalJSON()
}

// Buy represents a trade where shares of a security are acquired at a given
// price per share, paying a commission on top.
type Buy struct {
	tickerCmd
	Shares     Quantity // Shares is the number of shares bought.
	Price      Money    // Price is the price paid per share.
	Commission Money    // Commission is the broker fee for the trade.
}

// NewBuy creates a new Buy trade.
func NewBuy(day Date, memo, ticker string, shares Quantity, price, commission Money) Buy {
	return Buy{
		tickerCmd:  tickerCmd{baseCmd: baseCmd{Kind: KindBuy, Date: day, Memo: memo}, Ticker: ticker},
		Shares:     shares,
		Price:      price,
		Commission: commission,
	}
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.tickerCmd)
	w.Append("shares", t.Shares)
	w.Append("price", t.Price.value)
	w.Optional("commission", t.Commission.value)
	w.Optional("currency", t.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
// It handles the custom structure where price, commission and currency are
// separate fields.
func (t *Buy) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		tickerCmd
		priceCmd
		Shares Quantity `json:"shares"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	t.tickerCmd = temp.tickerCmd
	t.Shares = temp.Shares
	t.Price = temp.PriceMoney()
	t.Commission = temp.CommissionMoney()
	return nil
}

func (t Buy) Equal(other Trade) bool {
	o, ok := other.(Buy)
	return ok && t.tickerCmd == o.tickerCmd && t.Shares.Equal(o.Shares) && t.Price.Equal(o.Price) && t.Commission.Equal(o.Commission)
}

// Currency returns the currency shared by the price and the commission.
func (t Buy) Currency() string { return cur(t.Price, t.Commission) }

// Validate checks the Buy trade's fields. It ensures that the shares and the
// price are positive and the commission is not negative. There is no balance
// check: cash is allowed to go negative when the trade is applied.
func (t Buy) Validate() (Trade, error) {
	if err := t.tickerCmd.Validate(); err != nil {
		return t, err
	}

	if !t.Shares.IsPositive() {
		return t, fmt.Errorf("buy trade shares must be positive, got %s", t.Shares)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("buy trade price must be positive, got %s", t.Price)
	}
	if t.Commission.IsNegative() {
		return t, fmt.Errorf("buy trade commission cannot be negative, got %s", t.Commission)
	}
	return t, nil
}

// Sell represents a trade where shares of a security are disposed of at a
// given price per share, paying a commission on top.
type Sell struct {
	tickerCmd
	Shares     Quantity // Shares is the number of shares sold.
	Price      Money    // Price is the price obtained per share.
	Commission Money    // Commission is the broker fee for the trade.
}

// NewSell creates a new Sell trade.
func NewSell(day Date, memo, ticker string, shares Quantity, price, commission Money) Sell {
	return Sell{
		tickerCmd:  tickerCmd{baseCmd: baseCmd{Kind: KindSell, Date: day, Memo: memo}, Ticker: ticker},
		Shares:     shares,
		Price:      price,
		Commission: commission,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.tickerCmd)
	w.Append("shares", t.Shares)
	w.Append("price", t.Price.value)
	w.Optional("commission", t.Commission.value)
	w.Optional("currency", t.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
// It handles the custom structure where price, commission and currency are
// separate fields.
func (t *Sell) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		tickerCmd
		priceCmd
		Shares Quantity `json:"shares"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	t.tickerCmd = temp.tickerCmd
	t.Shares = temp.Shares
	t.Price = temp.PriceMoney()
	t.Commission = temp.CommissionMoney()
	return nil
}

func (t Sell) Equal(other Trade) bool {
	o, ok := other.(Sell)
	return ok && t.tickerCmd == o.tickerCmd && t.Shares.Equal(o.Shares) && t.Price.Equal(o.Price) && t.Commission.Equal(o.Commission)
}

// Currency returns the currency shared by the price and the commission.
func (t Sell) Currency() string { return cur(t.Price, t.Commission) }

// Validate checks the Sell trade's fields. It ensures that the shares and the
// price are positive and the commission is not negative. There is no position
// check: selling more than is held leaves a short position.
func (t Sell) Validate() (Trade, error) {
	if err := t.tickerCmd.Validate(); err != nil {
		return t, err
	}

	if !t.Shares.IsPositive() {
		return t, fmt.Errorf("sell trade shares must be positive, got %s", t.Shares)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("sell trade price must be positive, got %s", t.Price)
	}
	if t.Commission.IsNegative() {
		return t, fmt.Errorf("sell trade commission cannot be negative, got %s", t.Commission)
	}
	return t, nil
}

// Deposit represents a trade where cash is added to the cash position,
// counted directly in cash-ticker units.
type Deposit struct {
	baseCmd
	Amount Quantity // Amount is the quantity of cash deposited, in cash-ticker units.
	Price  Money    // Price is carried for symmetry with Buy and Sell; the transition never reads it.
}

// NewDeposit creates a new Deposit trade.
func NewDeposit(day Date, memo string, amount Quantity) Deposit {
	return Deposit{
		baseCmd: baseCmd{Kind: KindDeposit, Date: day, Memo: memo},
		Amount:  amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (t Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("amount", t.Amount)
	w.Optional("price", t.Price.value)
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Deposit.
func (t *Deposit) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		baseCmd
		priceCmd
		Amount Quantity `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseCmd = temp.baseCmd
	t.Amount = temp.Amount
	t.Price = temp.PriceMoney()
	return nil
}

func (t Deposit) Equal(other Trade) bool {
	o, ok := other.(Deposit)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount) && t.Price.Equal(o.Price)
}

// Validate checks the Deposit trade's fields. It ensures the deposit amount
// is positive.
func (t Deposit) Validate() (Trade, error) {
	t.baseCmd.Validate()

	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("deposit amount must be positive, got %s", t.Amount)
	}
	return t, nil
}

// Withdrawal represents a trade where cash is removed from the cash position,
// counted directly in cash-ticker units.
type Withdrawal struct {
	baseCmd
	Amount Quantity // Amount is the quantity of cash withdrawn, in cash-ticker units.
	Price  Money    // Price is carried for symmetry with Buy and Sell; the transition never reads it.
}

// NewWithdrawal creates a new Withdrawal trade.
func NewWithdrawal(day Date, memo string, amount Quantity) Withdrawal {
	return Withdrawal{
		baseCmd: baseCmd{Kind: KindWithdraw, Date: day, Memo: memo},
		Amount:  amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Withdrawal.
func (t Withdrawal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("amount", t.Amount)
	w.Optional("price", t.Price.value)
	w.Optional("currency", t.Price.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Withdrawal.
func (t *Withdrawal) UnmarshalJSON(data []byte) error {
	// Use a temporary type that has all possible fields.
	var temp struct {
		baseCmd
		priceCmd
		Amount Quantity `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseCmd = temp.baseCmd
	t.Amount = temp.Amount
	t.Price = temp.PriceMoney()
	return nil
}

func (t Withdrawal) Equal(other Trade) bool {
	o, ok := other.(Withdrawal)
	return ok && t.baseCmd == o.baseCmd && t.Amount.Equal(o.Amount) && t.Price.Equal(o.Price)
}

// Validate checks the Withdrawal trade's fields. It ensures the withdrawn
// amount is positive. There is no balance check: the cash position is allowed
// to go negative.
func (t Withdrawal) Validate() (Trade, error) {
	t.baseCmd.Validate()

	if !t.Amount.IsPositive() {
		return t, fmt.Errorf("withdrawal amount must be positive, got %s", t.Amount)
	}
	return t, nil
}

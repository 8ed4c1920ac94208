package model

import "github.com/shopspring/decimal"

// Positional columns of a statement row.
const (
	ColDate = iota
	ColDescription
	ColWithdrawal
	ColDeposit
	ColBalance

	NumColumns
)

// TransactionRecord is one reconstructed statement transaction.
// An amount with Valid == false is absent and renders as an empty cell.
type TransactionRecord struct {
	Date        string
	Description string
	Withdrawal  decimal.NullDecimal
	Deposit     decimal.NullDecimal
	Balance     decimal.NullDecimal
}

// IsBlank reports whether the record has no description and no amount. A
// date alone does not make a row worth keeping.
func (r TransactionRecord) IsBlank() bool {
	return r.Description == "" &&
		!r.Withdrawal.Valid && !r.Deposit.Valid && !r.Balance.Valid
}

// IsEmpty reports whether the record carries no date, description, or amount.
func (r TransactionRecord) IsEmpty() bool {
	return r.Date == "" && r.Description == "" &&
		!r.Withdrawal.Valid && !r.Deposit.Valid && !r.Balance.Valid
}

// Amount returns a present amount.
func Amount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// MustAmount parses s as a present amount and panics on failure. Intended for fixtures.
func MustAmount(s string) decimal.NullDecimal {
	return Amount(decimal.RequireFromString(s))
}

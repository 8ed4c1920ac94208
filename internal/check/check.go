package check

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/estado/internal/model"
)

// Kind identifies the rule a finding violates.
type Kind int

const (
	// BalanceMismatch means previous balance + deposit - withdrawal != balance.
	BalanceMismatch Kind = iota + 1
	// BothSides means a record carries a withdrawal and a deposit.
	BothSides
)

func (k Kind) String() string {
	switch k {
	case BalanceMismatch:
		return "balance mismatch"
	case BothSides:
		return "both withdrawal and deposit"
	default:
		return "unknown"
	}
}

// ValidationError describes a single suspicious record. Findings are
// warnings; they never stop a conversion.
type ValidationError struct {
	Kind        Kind
	Record      int // 1-based position in the record list
	Date        string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [record %d, %s]: %s", e.Kind, e.Record, e.Date, e.Description)
}

// CheckBalances walks records in order and reports rows whose balance does not
// follow from the previous one. The running balance starts at opening when it is
// present, otherwise at the first record that carries a balance. Records
// without a balance carry the computed balance forward.
func CheckBalances(records []model.TransactionRecord, opening decimal.NullDecimal) []ValidationError {
	var errs []ValidationError
	running := opening

	for i, rec := range records {
		if rec.Withdrawal.Valid && rec.Deposit.Valid {
			errs = append(errs, ValidationError{
				Kind:        BothSides,
				Record:      i + 1,
				Date:        rec.Date,
				Description: fmt.Sprintf("withdrawal %s and deposit %s", rec.Withdrawal.Decimal.StringFixed(2), rec.Deposit.Decimal.StringFixed(2)),
			})
		}

		if !running.Valid {
			running = rec.Balance
			continue
		}

		expected := running.Decimal
		if rec.Deposit.Valid {
			expected = expected.Add(rec.Deposit.Decimal)
		}
		if rec.Withdrawal.Valid {
			expected = expected.Sub(rec.Withdrawal.Decimal)
		}

		if rec.Balance.Valid && !rec.Balance.Decimal.Equal(expected) {
			errs = append(errs, ValidationError{
				Kind:        BalanceMismatch,
				Record:      i + 1,
				Date:        rec.Date,
				Description: fmt.Sprintf("expected balance %s, got %s", expected.StringFixed(2), rec.Balance.Decimal.StringFixed(2)),
			})
		}

		if rec.Balance.Valid {
			running = rec.Balance
		} else {
			running = decimal.NewNullDecimal(expected)
		}
	}
	return errs
}

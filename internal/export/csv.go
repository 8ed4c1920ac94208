package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/estado/internal/model"
	"github.com/cleared-dev/estado/internal/normalize"
)

// Header is the CSV header for a records file.
const Header = "date,description,withdrawal,deposit,balance"

// ReadRecords reads all records from a records CSV reader.
func ReadRecords(r io.Reader) ([]model.TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = model.NumColumns

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading records CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var records []model.TransactionRecord
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes records to w (including header).
func WriteRecords(w io.Writer, records []model.TransactionRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a record to CSV fields. Amounts use two decimals and
// no thousands separator; absent amounts are empty.
func MarshalRecord(rec model.TransactionRecord) []string {
	out := make([]string, model.NumColumns)
	out[model.ColDate] = rec.Date
	out[model.ColDescription] = rec.Description
	out[model.ColWithdrawal] = amountField(rec.Withdrawal)
	out[model.ColDeposit] = amountField(rec.Deposit)
	out[model.ColBalance] = amountField(rec.Balance)
	return out
}

// UnmarshalRecord parses CSV fields into a record.
func UnmarshalRecord(fields []string) (model.TransactionRecord, error) {
	if len(fields) != model.NumColumns {
		return model.TransactionRecord{}, fmt.Errorf("expected %d fields, got %d", model.NumColumns, len(fields))
	}

	rec := model.TransactionRecord{
		Date:        strings.TrimSpace(fields[model.ColDate]),
		Description: strings.TrimSpace(fields[model.ColDescription]),
	}
	var err error
	if rec.Withdrawal, err = parseAmountField(fields[model.ColWithdrawal]); err != nil {
		return rec, fmt.Errorf("parsing withdrawal: %w", err)
	}
	if rec.Deposit, err = parseAmountField(fields[model.ColDeposit]); err != nil {
		return rec, fmt.Errorf("parsing deposit: %w", err)
	}
	if rec.Balance, err = parseAmountField(fields[model.ColBalance]); err != nil {
		return rec, fmt.Errorf("parsing balance: %w", err)
	}
	return rec, nil
}

func amountField(a decimal.NullDecimal) string {
	if !a.Valid {
		return ""
	}
	return a.Decimal.StringFixed(2)
}

func parseAmountField(s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, ok := normalize.ParseAmount(s)
	if !ok {
		return decimal.NullDecimal{}, fmt.Errorf("%q is not an amount", s)
	}
	return decimal.NewNullDecimal(d), nil
}

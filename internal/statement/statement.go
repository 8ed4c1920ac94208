package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cleared-dev/estado/internal/model"
)

// ErrShortRow is returned when a spreadsheet row has fewer than five positional fields.
var ErrShortRow = errors.New("spreadsheet row has fewer than 5 fields")

// Validate checks the shape of every input before any processing happens.
func Validate(inputs []model.Input) error {
	for _, in := range inputs {
		r, ok := in.(model.SpreadsheetRow)
		if !ok {
			continue
		}
		if len(r.Fields) < model.NumColumns {
			return fmt.Errorf("row %d: %w (got %d)", r.Line, ErrShortRow, len(r.Fields))
		}
	}
	return nil
}

// GroupInputs lexes and groups inputs.
func GroupInputs(inputs []model.Input, opts Options) ([]Group, error) {
	if err := Validate(inputs); err != nil {
		return nil, err
	}

	g := newGrouper(opts)
	for _, in := range inputs {
		switch v := in.(type) {
		case model.SpreadsheetRow:
			g.feed(opts.lexSpreadsheetRow(v))
		case model.TextLine:
			g.feed(opts.lexTextLine(v))
		default:
			return nil, fmt.Errorf("line %d: unsupported input %T", model.LineOf(in), in)
		}
	}
	return g.finish(), nil
}

// Build turns a closed group into a record. It returns false when the record has
// no description and no amounts and opts.DropEmpty is set.
func Build(g Group, opts Options) (model.TransactionRecord, bool) {
	rec := model.TransactionRecord{
		Date:        collapseSpaces(opts.Policy.String(g.Date)),
		Description: collapseSpaces(opts.Policy.String(strings.Join(g.Fragments, " "))),
		Withdrawal:  g.Withdrawal,
		Deposit:     g.Deposit,
		Balance:     g.Balance,
	}
	if opts.DropEmpty && rec.IsBlank() {
		return rec, false
	}
	return rec, true
}

// Reconstruct runs validation, grouping and record building over inputs.
func Reconstruct(inputs []model.Input, opts Options) ([]model.TransactionRecord, error) {
	groups, err := GroupInputs(inputs, opts)
	if err != nil {
		return nil, err
	}

	records := make([]model.TransactionRecord, 0, len(groups))
	dropped := 0
	for _, g := range groups {
		rec, ok := Build(g, opts)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	opts.Logger.Debug().
		Int("inputs", len(inputs)).
		Int("groups", len(groups)).
		Int("dropped", dropped).
		Msg("statement reconstructed")
	return records, nil
}

package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/estado/internal/model"
	"github.com/cleared-dev/estado/internal/normalize"
)

// row is the format-agnostic shape both input variants are reduced to.
type row struct {
	line        int
	date        string
	description string
	withdrawal  decimal.NullDecimal
	deposit     decimal.NullDecimal
	balance     decimal.NullDecimal

	// rawBalance is the balance before the zero policy; it drives side decisions.
	rawBalance decimal.NullDecimal

	// Raw-text terminal lines carry an amount whose side is decided by the grouper.
	terminal bool
	amount   decimal.NullDecimal
}

// amountShaped matches a token that looks like a two-decimal amount, so that a
// malformed one ("1.234.56") is still recognized as an attempted amount.
var amountShaped = regexp.MustCompile(`^\(?[-+]?\$?[\d.,]*\d[.,]\d{2}\)?-?$`)

func (o Options) lexSpreadsheetRow(r model.SpreadsheetRow) row {
	f := r.Fields
	return row{
		line:        r.Line,
		date:        collapseSpaces(o.Policy.Text(f[model.ColDate])),
		description: o.Policy.Text(f[model.ColDescription]),
		withdrawal:  o.Policy.Amount(f[model.ColWithdrawal]),
		deposit:     o.Policy.Amount(f[model.ColDeposit]),
		balance:     o.Policy.Amount(f[model.ColBalance]),
		rawBalance:  normalize.Parsed(f[model.ColBalance]),
	}
}

func (o Options) lexTextLine(l model.TextLine) row {
	r := row{line: l.Line}
	text := strings.TrimSpace(l.Text)
	if text == "" {
		return r
	}

	if loc := o.datePattern().FindStringIndex(text); loc != nil && loc[0] == 0 {
		r.date = collapseSpaces(text[:loc[1]])
		text = strings.TrimSpace(text[loc[1]:])
	}

	fields := strings.Fields(text)
	n := len(fields)
	if n >= 2 && amountShaped.MatchString(fields[n-2]) && amountShaped.MatchString(fields[n-1]) {
		amount, okAmount := normalize.ParseAmount(fields[n-2])
		balance, okBalance := normalize.ParseAmount(fields[n-1])
		if okAmount && okBalance {
			r.terminal = true
			r.amount = o.Policy.Keep(amount)
			r.balance = o.Policy.Keep(balance)
			r.rawBalance = decimal.NewNullDecimal(balance)
			r.description = o.Policy.String(strings.Join(fields[:n-2], " "))
			return r
		}
		o.Logger.Warn().
			Int("line", l.Line).
			Str("text", l.Text).
			Msg("malformed amount line treated as description")
	}

	r.description = o.Policy.String(strings.Join(fields, " "))
	return r
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Package statement reconstructs transaction records from fragmented
// spreadsheet rows or extracted text lines.
package statement

import (
	"regexp"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/estado/internal/normalize"
)

// DefaultDatePattern matches the leading date token of a text line:
// "10 ENE", "10-ENE", "10/01" or "10/01/2025".
const DefaultDatePattern = `(?i)^(\d{1,2}[ \-/]+(ENE|FEB|MAR|ABR|MAY|JUN|JUL|AGO|SEP|SET|OCT|NOV|DIC|JAN|APR|AUG|DEC)|\d{1,2}/\d{1,2}(/\d{2,4})?)\b`

// DefaultDepositKeywords mark a description as a deposit when no balance context exists.
var DefaultDepositKeywords = []string{"DEPOSITO", "DEPÓSITO", "ABONO", "RECIBIDO", "INTERESES GANADOS"}

// Options configures one reconstruction run.
type Options struct {
	Policy          normalize.Policy
	DropEmpty       bool
	DatePattern     *regexp.Regexp
	DepositKeywords []string
	OpeningBalance  decimal.NullDecimal
	Logger          zerolog.Logger
}

// DefaultOptions returns the options used when no configuration is supplied.
func DefaultOptions() Options {
	return Options{
		Policy:          normalize.DefaultPolicy(),
		DatePattern:     regexp.MustCompile(DefaultDatePattern),
		DepositKeywords: DefaultDepositKeywords,
		Logger:          zerolog.Nop(),
	}
}

func (o Options) datePattern() *regexp.Regexp {
	if o.DatePattern == nil {
		return regexp.MustCompile(DefaultDatePattern)
	}
	return o.DatePattern
}

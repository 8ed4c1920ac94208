package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/estado/internal/model"
)

// SentinelMode selects how missing-value markers are removed from text.
type SentinelMode int

const (
	// WholeValue blanks a field only when its entire trimmed value is a sentinel.
	WholeValue SentinelMode = iota
	// StripTokens additionally drops whitespace-delimited sentinel tokens inside text.
	StripTokens
)

func (m SentinelMode) String() string {
	switch m {
	case StripTokens:
		return "strip-tokens"
	default:
		return "whole-value"
	}
}

// ParseSentinelMode maps a config value to a SentinelMode. Empty means WholeValue.
func ParseSentinelMode(s string) (SentinelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "whole-value":
		return WholeValue, nil
	case "strip-tokens":
		return StripTokens, nil
	default:
		return WholeValue, fmt.Errorf("unknown sentinel mode %q", s)
	}
}

// Policy controls the ambiguous cases of normalization for one conversion run.
type Policy struct {
	ZeroAsEmpty bool
	Sentinels   SentinelMode
}

// DefaultPolicy treats zero amounts as empty and matches sentinels on whole values.
func DefaultPolicy() Policy {
	return Policy{ZeroAsEmpty: true, Sentinels: WholeValue}
}

var sentinels = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"null": true,
	"na":   true,
	"n/a":  true,
	"<na>": true,
}

// IsSentinel reports whether s, trimmed and case-folded, is a missing-value marker.
func IsSentinel(s string) bool {
	return sentinels[strings.ToLower(strings.TrimSpace(s))]
}

// Text returns the display string for f.
func (p Policy) Text(f model.RawField) string {
	if !f.Valid || IsSentinel(f.Value) {
		return ""
	}
	s := strings.TrimSpace(f.Value)
	if p.Sentinels == StripTokens {
		s = stripSentinelTokens(s)
	}
	return s
}

// String is Text for a value known to be present.
func (p Policy) String(s string) string {
	return p.Text(model.Field(s))
}

func stripSentinelTokens(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if IsSentinel(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// Amount returns the numeric value of f, or an absent amount.
func (p Policy) Amount(f model.RawField) decimal.NullDecimal {
	v := Parsed(f)
	if !v.Valid {
		return v
	}
	return p.Keep(v.Decimal)
}

// Parsed returns the numeric value of f without applying the zero policy.
func Parsed(f model.RawField) decimal.NullDecimal {
	if !f.Valid || IsSentinel(f.Value) {
		return decimal.NullDecimal{}
	}
	d, ok := ParseAmount(f.Value)
	if !ok {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Keep applies the zero policy to a parsed amount.
func (p Policy) Keep(d decimal.Decimal) decimal.NullDecimal {
	if p.ZeroAsEmpty && d.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

var (
	plainNumber  = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
	commaGrouped = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
	dotGrouped   = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)
	decimalComma = regexp.MustCompile(`^\d+,\d{1,2}$`)
)

// ParseAmount parses a locale-formatted number. It accepts 1234.5, 1,234.56,
// 1.234,56 and 12,50, an optional leading $, and a leading minus, trailing minus
// or surrounding parentheses for negatives.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, false
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		neg = !neg
		s = strings.TrimSuffix(s, "-")
	}
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = strings.TrimPrefix(s, "-")
	} else {
		s = strings.TrimPrefix(s, "+")
	}
	s = strings.TrimPrefix(s, "$")

	var canonical string
	switch {
	case plainNumber.MatchString(s):
		canonical = s
	case commaGrouped.MatchString(s):
		canonical = strings.ReplaceAll(s, ",", "")
	case dotGrouped.MatchString(s):
		canonical = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	case decimalComma.MatchString(s):
		canonical = strings.ReplaceAll(s, ",", ".")
	default:
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// FormatAmount renders a present amount with two decimals and comma thousands
// separators, e.g. 1,234.56. Absent amounts render as "".
func FormatAmount(a decimal.NullDecimal) string {
	if !a.Valid {
		return ""
	}
	fixed := a.Decimal.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if a.Decimal.IsNegative() && !a.Decimal.Round(2).IsZero() {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

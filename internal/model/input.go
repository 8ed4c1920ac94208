package model

// RawField is a single extracted value before normalization.
// Valid is false when the source had no value at all (short row, empty cell).
type RawField struct {
	Value string
	Valid bool
}

// Missing is the absent field.
var Missing = RawField{}

// Field wraps a present value.
func Field(s string) RawField {
	return RawField{Value: s, Valid: true}
}

// Input is one physical unit of statement input: a spreadsheet row or a text line.
type Input interface {
	inputLine() int
}

// SpreadsheetRow holds positional fields in the order
// date, description, withdrawal, deposit, balance.
type SpreadsheetRow struct {
	Line   int // 1-based row number in the source sheet
	Fields []RawField
}

func (r SpreadsheetRow) inputLine() int { return r.Line }

// TextLine is one line of extracted document text in reading order.
type TextLine struct {
	Line int
	Text string
}

func (l TextLine) inputLine() int { return l.Line }

// LineOf returns the source line number of an input.
func LineOf(in Input) int { return in.inputLine() }

// SpreadsheetRowFromStrings builds a row where every cell is present.
func SpreadsheetRowFromStrings(line int, cells ...string) SpreadsheetRow {
	fields := make([]RawField, len(cells))
	for i, c := range cells {
		fields[i] = Field(c)
	}
	return SpreadsheetRow{Line: line, Fields: fields}
}

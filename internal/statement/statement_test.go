package statement

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/estado/internal/model"
)

func textInputs(lines ...string) []model.Input {
	inputs := make([]model.Input, len(lines))
	for i, l := range lines {
		inputs[i] = model.TextLine{Line: i + 1, Text: l}
	}
	return inputs
}

func sheetInputs(rows ...[]string) []model.Input {
	inputs := make([]model.Input, len(rows))
	for i, r := range rows {
		inputs[i] = model.SpreadsheetRowFromStrings(i+2, r...)
	}
	return inputs
}

func assertAmount(t *testing.T, want string, got decimal.NullDecimal, msgAndArgs ...any) {
	t.Helper()
	if want == "" {
		assert.False(t, got.Valid, msgAndArgs...)
		return
	}
	require.True(t, got.Valid, msgAndArgs...)
	assert.True(t, decimal.RequireFromString(want).Equal(got.Decimal), "want %s, got %s", want, got.Decimal)
}

func TestReconstruct_SpreadsheetRoundTrip(t *testing.T) {
	inputs := sheetInputs(
		[]string{"10 ENE", "PAGO", "", "100.00", "500.00"},
		[]string{"", "TARJETA", "", "", ""},
	)

	recs, err := Reconstruct(inputs, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "10 ENE", recs[0].Date)
	assert.Equal(t, "PAGO TARJETA", recs[0].Description)
	assertAmount(t, "", recs[0].Withdrawal)
	assertAmount(t, "100.00", recs[0].Deposit)
	assertAmount(t, "500.00", recs[0].Balance)
}

func TestReconstruct_SpreadsheetLastValueWins(t *testing.T) {
	inputs := sheetInputs(
		[]string{"nan", "ENCABEZADO", "", "", ""},
		[]string{"02 FEB", "COMPRA", "10.00", "nan", "90.00"},
		[]string{"NaN", "  COMERCIO   X ", "", "", "85.00"},
		[]string{"", "", "", "", ""},
		[]string{"03 FEB", "SPEI", "", "1,000.00", "1,085.00"},
	)

	recs, err := Reconstruct(inputs, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "COMPRA COMERCIO X", recs[0].Description)
	assertAmount(t, "10.00", recs[0].Withdrawal)
	assertAmount(t, "85.00", recs[0].Balance, "later non-empty balance overwrites")
	assertAmount(t, "", recs[0].Deposit)

	assert.Equal(t, "03 FEB", recs[1].Date)
	assertAmount(t, "1000", recs[1].Deposit)
}

func TestReconstruct_NeverRevertsToAbsent(t *testing.T) {
	inputs := sheetInputs(
		[]string{"05 MAR", "RETIRO", "50.00", "", "450.00"},
		[]string{"", "CAJERO", "0", "n/a", "0.00"},
	)

	recs, err := Reconstruct(inputs, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assertAmount(t, "50.00", recs[0].Withdrawal)
	assertAmount(t, "450.00", recs[0].Balance)
}

func TestReconstruct_ShortRowFailsBeforeProcessing(t *testing.T) {
	inputs := []model.Input{
		model.SpreadsheetRowFromStrings(2, "01 ENE", "A", "", "", "1.00"),
		model.SpreadsheetRowFromStrings(3, "02 ENE", "B", ""),
	}
	_, err := Reconstruct(inputs, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShortRow)
	assert.Contains(t, err.Error(), "row 3")
}

func TestReconstruct_NoDateYieldsNothing(t *testing.T) {
	recs, err := Reconstruct(textInputs("BANCO NACIONAL", "ESTADO DE CUENTA", "100.00 200.00"), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = Reconstruct(sheetInputs([]string{"", "X", "1", "", "2"}), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReconstruct_TextEndToEnd(t *testing.T) {
	opts := DefaultOptions()
	opts.OpeningBalance = model.MustAmount("500.00")

	recs, err := Reconstruct(textInputs(
		"10 ENE SALDO ANTERIOR",
		"",
		"12 ENE DEPOSITO",
		"EN EFECTIVO",
		"100.00 600.00",
	), opts)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, model.TransactionRecord{Date: "10 ENE", Description: "SALDO ANTERIOR"}, recs[0])

	assert.Equal(t, "12 ENE", recs[1].Date)
	assert.Equal(t, "DEPOSITO EN EFECTIVO", recs[1].Description)
	assertAmount(t, "", recs[1].Withdrawal)
	assertAmount(t, "100.00", recs[1].Deposit)
	assertAmount(t, "600.00", recs[1].Balance)
}

func TestReconstruct_TextSideFromBalance(t *testing.T) {
	opts := DefaultOptions()
	opts.OpeningBalance = model.MustAmount("1000.00")

	recs, err := Reconstruct(textInputs(
		"01/02 PAGO SERVICIO LUZ",
		"250.00 750.00",
		"02/02 TRANSFERENCIA",
		"1,250.00 2,000.00",
		"03/02 COMISION 5.00 1,995.00",
	), opts)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assertAmount(t, "250.00", recs[0].Withdrawal)
	assertAmount(t, "", recs[0].Deposit)
	assertAmount(t, "1250.00", recs[1].Deposit)
	assert.Equal(t, "COMISION", recs[2].Description)
	assertAmount(t, "5.00", recs[2].Withdrawal)
	assertAmount(t, "1995.00", recs[2].Balance)
}

func TestReconstruct_TextSideAfterZeroBalance(t *testing.T) {
	recs, err := Reconstruct(textInputs(
		"01 ENE DEPOSITO",
		"100.00 100.00",
		"02 ENE RETIRO CAJERO",
		"100.00 0.00",
		"03 ENE TRANSFERENCIA SPEI",
		"50.00 50.00",
	), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assertAmount(t, "100.00", recs[1].Withdrawal)
	assertAmount(t, "", recs[1].Balance, "zero balance renders empty")

	// 0.00 + 50.00 = 50.00
	assertAmount(t, "50.00", recs[2].Deposit)
	assertAmount(t, "", recs[2].Withdrawal)
}

func TestReconstruct_SheetZeroBalanceFeedsTextSide(t *testing.T) {
	inputs := append(sheetInputs(
		[]string{"01 ENE", "RETIRO", "100.00", "", "0.00"},
	), textInputs("02 ENE TRANSFERENCIA", "50.00 50.00")...)
	opts := DefaultOptions()
	opts.OpeningBalance = model.MustAmount("100.00")

	recs, err := Reconstruct(inputs, opts)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assertAmount(t, "50.00", recs[1].Deposit)
}

func TestReconstruct_TextSideFromKeywords(t *testing.T) {
	recs, err := Reconstruct(textInputs(
		"15 ENE ABONO NOMINA 3,000.00 3,000.00",
		"16 ENE COMPRA OXXO",
		"45.50 2,954.50",
	), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assertAmount(t, "3000", recs[0].Deposit)
	assertAmount(t, "45.50", recs[1].Withdrawal, "balance context from the first group applies")
}

func TestReconstruct_TextLinesAfterCloseAreDiscarded(t *testing.T) {
	recs, err := Reconstruct(textInputs(
		"20 ENE RETIRO",
		"100.00 400.00",
		"PAGINA 2 DE 3",
		"21 ENE CARGO",
	), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "RETIRO", recs[0].Description)
	assert.Equal(t, "CARGO", recs[1].Description)
}

func TestReconstruct_MalformedTerminalLineIsContinuation(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = zerolog.New(&buf)

	recs, err := Reconstruct(textInputs(
		"22 ENE CHEQUE",
		"1.234.56 9,999.00",
		"10.00 90.00",
	), opts)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "CHEQUE 1.234.56 9,999.00", recs[0].Description)
	assertAmount(t, "10.00", recs[0].Withdrawal)
	assertAmount(t, "90.00", recs[0].Balance)
	assert.Contains(t, buf.String(), "malformed amount line")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestReconstruct_StartWithoutAmounts(t *testing.T) {
	recs, err := Reconstruct(textInputs("10 ENE SALDO ANTERIOR", "11 ENE CARGO"), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "SALDO ANTERIOR", recs[0].Description)
	assert.False(t, recs[0].Balance.Valid)
}

func TestReconstruct_DropEmptyPolicy(t *testing.T) {
	inputs := sheetInputs(
		[]string{"10 ENE", "PAGO", "1.00", "", "9.00"},
		[]string{"11 ENE", "", "", "", ""},
	)

	keep := DefaultOptions()
	recs, err := Reconstruct(inputs, keep)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, model.TransactionRecord{Date: "11 ENE"}, recs[1])

	drop := DefaultOptions()
	drop.DropEmpty = true
	recs, err = Reconstruct(inputs, drop)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "PAGO", recs[0].Description)

	g := Group{Date: "nan"}
	_, ok := Build(g, Options{DropEmpty: true})
	assert.False(t, ok)
	_, ok = Build(g, Options{DropEmpty: false})
	assert.True(t, ok)
}

func TestBuild_JoinsFragments(t *testing.T) {
	g := Group{
		Date:      " 10   ENE ",
		Fragments: []string{"PAGO", "  TARJETA  ", "CREDITO"},
		Deposit:   model.MustAmount("100.00"),
	}
	rec, ok := Build(g, DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, "10 ENE", rec.Date)
	assert.Equal(t, "PAGO TARJETA CREDITO", rec.Description)
	assertAmount(t, "100", rec.Deposit)
}

func TestGroupInputs_StartLineDate(t *testing.T) {
	groups, err := GroupInputs(textInputs("10-ene pago", "3/1/2025 otro"), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "10-ene", groups[0].Date)
	assert.Equal(t, []string{"pago"}, groups[0].Fragments)
	assert.Equal(t, "3/1/2025", groups[1].Date)
	assert.Equal(t, 2, groups[1].Line)
}

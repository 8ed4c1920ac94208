package check

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/estado/internal/model"
)

func rec(date, wd, dep, bal string) model.TransactionRecord {
	r := model.TransactionRecord{Date: date, Description: "MOV " + date}
	if wd != "" {
		r.Withdrawal = model.MustAmount(wd)
	}
	if dep != "" {
		r.Deposit = model.MustAmount(dep)
	}
	if bal != "" {
		r.Balance = model.MustAmount(bal)
	}
	return r
}

func TestCheckBalancesClean(t *testing.T) {
	records := []model.TransactionRecord{
		rec("01 ENE", "", "", "500.00"),
		rec("02 ENE", "", "100.00", "600.00"),
		rec("03 ENE", "50.25", "", "549.75"),
	}
	assert.Empty(t, CheckBalances(records, decimal.NullDecimal{}))
}

func TestCheckBalancesMismatch(t *testing.T) {
	records := []model.TransactionRecord{
		rec("02 ENE", "", "100.00", "600.00"),
		rec("03 ENE", "50.00", "", "560.00"),
		rec("04 ENE", "10.00", "", "550.00"),
	}
	errs := CheckBalances(records, model.MustAmount("500"))
	require.Len(t, errs, 1)
	assert.Equal(t, BalanceMismatch, errs[0].Kind)
	assert.Equal(t, 2, errs[0].Record)
	assert.Contains(t, errs[0].Error(), "expected balance 550.00, got 560.00")
}

func TestCheckBalancesCarriesForward(t *testing.T) {
	records := []model.TransactionRecord{
		rec("01 ENE", "", "", "500.00"),
		rec("02 ENE", "20.00", "", ""),
		rec("02 ENE", "30.00", "", "450.00"),
	}
	assert.Empty(t, CheckBalances(records, decimal.NullDecimal{}))
}

func TestCheckBalancesBothSides(t *testing.T) {
	records := []model.TransactionRecord{
		rec("05 ENE", "10.00", "10.00", "500.00"),
	}
	errs := CheckBalances(records, model.MustAmount("500"))
	require.Len(t, errs, 1)
	assert.Equal(t, BothSides, errs[0].Kind)
	assert.Equal(t, "both withdrawal and deposit", errs[0].Kind.String())
}

func TestCheckBalancesNoAnchor(t *testing.T) {
	records := []model.TransactionRecord{
		rec("02 ENE", "10.00", "", ""),
		rec("03 ENE", "10.00", "", ""),
	}
	assert.Empty(t, CheckBalances(records, decimal.NullDecimal{}))
}

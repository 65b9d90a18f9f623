package statutory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithholding_RebateCliff(t *testing.T) {
	regime := DefaultTaxRegimes()[RegimeNew]

	// 64,583 × 12 = 774,996; minus 75,000 standard deduction = 699,996,
	// just under the 700,000 rebate limit: annual tax forced to zero.
	below, err := CalculateWithholding(TDSInput{PeriodTaxableIncome: 64583, RemainingPeriods: 12}, regime)
	assert.NoError(t, err)
	assert.True(t, below.RebateApplied)
	assert.Zero(t, below.AnnualLiability)
	assert.Zero(t, below.AmountThisPeriod)

	// One rupee over the cliff and the whole slab computation applies.
	above, err := CalculateWithholding(TDSInput{PeriodTaxableIncome: 70000, RemainingPeriods: 12}, regime)
	assert.NoError(t, err)
	assert.False(t, above.RebateApplied)
	assert.NotZero(t, above.AnnualLiability)
}

func TestWithholding_MarginalSlabsNotFlatRate(t *testing.T) {
	regime := DefaultTaxRegimes()[RegimeNew]

	// 100,000/month → 1,200,000 projected, 1,125,000 net of standard deduction.
	// Slabwise: 0 + 400,000×5% + 300,000×10% + 125,000×15% = 68,750.
	// With 4% cess: 71,500.
	res, err := CalculateWithholding(TDSInput{PeriodTaxableIncome: 100000, RemainingPeriods: 12}, regime)
	assert.NoError(t, err)
	assert.Equal(t, 1125000.0, res.NetTaxableIncome)
	assert.Equal(t, 71500.0, res.AnnualLiability)
	assert.Equal(t, RoundRupee(71500.0/12), res.AmountThisPeriod)
}

func TestWithholding_SpreadsOutstandingOverRemainingPeriods(t *testing.T) {
	regime := DefaultTaxRegimes()[RegimeNew]

	res, err := CalculateWithholding(TDSInput{
		PeriodTaxableIncome: 100000,
		AlreadyWithheld:     41500,
		RemainingPeriods:    6,
	}, regime)
	assert.NoError(t, err)
	assert.Equal(t, 5000.0, res.AmountThisPeriod)
}

func TestWithholding_TerminalPeriodReturnsFullRemainder(t *testing.T) {
	regime := DefaultTaxRegimes()[RegimeNew]

	res, err := CalculateWithholding(TDSInput{
		PeriodTaxableIncome: 100000,
		AlreadyWithheld:     60000,
		RemainingPeriods:    0,
	}, regime)
	assert.NoError(t, err)
	assert.Equal(t, 11500.0, res.AmountThisPeriod)
}

func TestWithholding_OverWithheldNeverGoesNegative(t *testing.T) {
	regime := DefaultTaxRegimes()[RegimeNew]

	res, err := CalculateWithholding(TDSInput{
		PeriodTaxableIncome: 100000,
		AlreadyWithheld:     99999999,
		RemainingPeriods:    3,
	}, regime)
	assert.NoError(t, err)
	assert.Zero(t, res.AmountThisPeriod)
}

func TestWithholding_OldRegimeUsesItsOwnTable(t *testing.T) {
	regime := DefaultTaxRegimes()[RegimeOld]

	// 50,000/month → 600,000 projected, 550,000 net of the 50,000 deduction.
	// Above the 500,000 rebate limit: 250,000×5% + 50,000×20% = 22,500, cess → 23,400.
	res, err := CalculateWithholding(TDSInput{PeriodTaxableIncome: 50000, RemainingPeriods: 12}, regime)
	assert.NoError(t, err)
	assert.False(t, res.RebateApplied)
	assert.Equal(t, 23400.0, res.AnnualLiability)
}

func TestWithholding_InputValidation(t *testing.T) {
	regime := DefaultTaxRegimes()[RegimeNew]

	_, err := CalculateWithholding(TDSInput{PeriodTaxableIncome: -1}, regime)
	assert.ErrorIs(t, err, ErrNegativeInput)

	_, err = CalculateWithholding(TDSInput{PeriodTaxableIncome: 100}, TaxRegime{})
	assert.Error(t, err)
}

package statutory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePF_BelowCeiling(t *testing.T) {
	rates := DefaultPFRates()

	res, err := CalculatePF(PFInput{BasicWage: 12000}, rates)
	assert.NoError(t, err)
	assert.False(t, res.WasCapped)
	assert.Equal(t, 1440.0, res.EmployeeShare)
	assert.Equal(t, RoundRupee(12000*rates.EmployerFundRate), res.Employer.Fund)
	assert.Equal(t, RoundRupee(12000*rates.PensionRate), res.Employer.Pension)
}

func TestCalculatePF_CeilingCapsBase(t *testing.T) {
	rates := DefaultPFRates()

	atCeiling, err := CalculatePF(PFInput{BasicWage: rates.WageCeiling}, rates)
	assert.NoError(t, err)
	assert.False(t, atCeiling.WasCapped)

	farAbove, err := CalculatePF(PFInput{BasicWage: 500000}, rates)
	assert.NoError(t, err)
	assert.True(t, farAbove.WasCapped)

	// The share is constant above the ceiling regardless of distance.
	assert.Equal(t, atCeiling.EmployeeShare, farAbove.EmployeeShare)
	assert.Equal(t, atCeiling.Employer, farAbove.Employer)
}

func TestCalculatePF_KnownFigure(t *testing.T) {
	res, err := CalculatePF(PFInput{BasicWage: 50000}, DefaultPFRates())
	assert.NoError(t, err)
	assert.Equal(t, 1800.0, res.EmployeeShare)
	assert.True(t, res.WasCapped)
}

func TestCalculatePF_PensionAbsoluteCeiling(t *testing.T) {
	rates := DefaultPFRates()
	rates.PensionCeiling = 1000

	res, err := CalculatePF(PFInput{BasicWage: 15000}, rates)
	assert.NoError(t, err)
	// 8.33% of 15000 is 1249.95; the absolute cap wins over the percentage.
	assert.Equal(t, 1000.0, res.Employer.Pension)
	assert.Equal(t, RoundRupee(15000*rates.EmployerFundRate), res.Employer.Fund)
}

func TestCalculatePF_InternationalWorkerZeroesOnlyPension(t *testing.T) {
	res, err := CalculatePF(PFInput{BasicWage: 14000, InternationalWorker: true}, DefaultPFRates())
	assert.NoError(t, err)
	assert.Equal(t, 0.0, res.Employer.Pension)
	assert.NotZero(t, res.Employer.Fund)
	assert.NotZero(t, res.Employer.EDLI)
	assert.NotZero(t, res.EmployeeShare)
}

func TestCalculatePF_ExemptedReturnsShapedZero(t *testing.T) {
	res, err := CalculatePF(PFInput{BasicWage: 14000, Exempted: true}, DefaultPFRates())
	assert.NoError(t, err)
	assert.Equal(t, PFResult{}, res)
}

func TestCalculatePF_RejectsNegativeWage(t *testing.T) {
	_, err := CalculatePF(PFInput{BasicWage: -1}, DefaultPFRates())
	assert.ErrorIs(t, err, ErrNegativeInput)
}

func TestCalculatePF_EmployerTotalSumsRoundedParts(t *testing.T) {
	res, err := CalculatePF(PFInput{BasicWage: 13333}, DefaultPFRates())
	assert.NoError(t, err)
	sum := res.Employer.Fund + res.Employer.Pension + res.Employer.EDLI + res.Employer.Admin + res.Employer.EDLIAdmin
	assert.Equal(t, sum, res.Employer.Total)
}

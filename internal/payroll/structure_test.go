package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/statutory"
)

func TestSynthesize_ComponentsSumToMonthlyCost(t *testing.T) {
	rates := DefaultRateSet()

	res, err := Synthesize(1200000, SynthesizeOptions{PFApplicable: true}, rates)
	assert.NoError(t, err)
	assert.False(t, res.Infeasible)
	assert.Equal(t, 100000.0, res.MonthlyCost)

	s := res.Structure
	total := s.Basic + s.HouseRent + s.Transport + res.BalancingAllowance + res.EmployerPF + res.EmployerESI
	assert.InDelta(t, res.MonthlyCost, total, 1.0)
	assert.Equal(t, s.Basic+s.HouseRent+s.Transport+res.BalancingAllowance, res.MonthlyGross)
}

func TestSynthesize_TwoPassFundsEmployerInsurance(t *testing.T) {
	rates := DefaultRateSet()

	// 216,000/year → 18,000/month gross territory, inside the ESI limit.
	res, err := Synthesize(216000, SynthesizeOptions{PFApplicable: true, ESIApplicable: true}, rates)
	assert.NoError(t, err)
	assert.False(t, res.Infeasible)
	assert.NotZero(t, res.EmployerESI)

	total := res.Structure.Basic + res.Structure.HouseRent + res.Structure.Transport +
		res.BalancingAllowance + res.EmployerPF + res.EmployerESI
	assert.InDelta(t, res.MonthlyCost, total, 1.0)
}

func TestSynthesize_HighCostSkipsInsurance(t *testing.T) {
	res, err := Synthesize(2400000, SynthesizeOptions{PFApplicable: true, ESIApplicable: true}, DefaultRateSet())
	assert.NoError(t, err)
	// 200,000/month gross is far above the eligibility limit.
	assert.Zero(t, res.EmployerESI)
}

func TestSynthesize_InfeasibleClampsToZero(t *testing.T) {
	res, err := Synthesize(24000, SynthesizeOptions{PFApplicable: true}, DefaultRateSet())
	assert.NoError(t, err)
	assert.True(t, res.Infeasible)
	assert.Zero(t, res.BalancingAllowance)
	assert.NotEmpty(t, res.Note)
}

func TestSynthesize_RejectsNegativeCost(t *testing.T) {
	_, err := Synthesize(-1, SynthesizeOptions{}, DefaultRateSet())
	assert.ErrorIs(t, err, statutory.ErrNegativeInput)
}

func TestSynthesize_RoundTripThroughProcessor(t *testing.T) {
	rates := DefaultRateSet()

	res, err := Synthesize(900000, SynthesizeOptions{PFApplicable: true, ESIApplicable: true, PTaxApplicable: true}, rates)
	assert.NoError(t, err)
	assert.False(t, res.Infeasible)

	// Feeding the synthesized structure back through proration with full
	// attendance must reproduce the monthly gross within rounding tolerance.
	p := NewProcessor(rates, nil)
	emp := EmployeeRecord{ID: "rt", Name: "Round Trip", Gender: "male", State: statutory.StateMaharashtra, Structure: res.Structure}
	period := PeriodContext{Month: time.June, Year: 2024}

	run, err := p.ProcessBatch(context.Background(), []EmployeeRecord{emp}, nil, period)
	assert.NoError(t, err)

	item := run.Items[0]
	assert.InDelta(t, res.MonthlyGross, item.Earnings.Gross, 4.0)
	assert.Equal(t, item.Earnings.Gross-item.Deductions.TotalEmployee, item.NetPay)
}

package statutory

import "errors"

// PeriodsPerYear is the number of payroll periods used for straight-line
// annualization of the current period's taxable income.
const PeriodsPerYear = 12

// TaxSlab is one marginal bracket. UpperBound < 0 marks the open-ended top
// bracket. Slabs must be listed in ascending order of UpperBound.
type TaxSlab struct {
	UpperBound float64
	Rate       float64
}

// TaxRegime is a data-only slab definition keyed by regime code. The
// variation between regimes is entirely data, never behavior.
type TaxRegime struct {
	Code              string
	StandardDeduction float64
	// RebateLimit is a cliff: at or below it the whole annual liability is
	// forced to zero. No marginal relief is modeled at the boundary.
	RebateLimit float64
	Slabs       []TaxSlab
	CessRate    float64
}

type TDSInput struct {
	PeriodTaxableIncome float64
	AlreadyWithheld     float64
	RemainingPeriods    int
}

type TDSResult struct {
	ProjectedAnnualIncome float64 `json:"projected_annual_income"`
	NetTaxableIncome      float64 `json:"net_taxable_income"`
	AnnualLiability       float64 `json:"annual_liability"`
	RebateApplied         bool    `json:"rebate_applied"`
	AmountThisPeriod      float64 `json:"amount_this_period"`
}

var errUnknownRegime = errors.New("unknown tax regime")

// CalculateWithholding spreads the projected annual income-tax liability over
// the remaining payroll periods of the fiscal year.
//
// Annualization is a straight-line projection of the current period, not an
// actuals-plus-projection blend. If no periods remain the full outstanding
// liability is returned undivided (terminal period).
func CalculateWithholding(in TDSInput, regime TaxRegime) (TDSResult, error) {
	if in.PeriodTaxableIncome < 0 || in.AlreadyWithheld < 0 {
		return TDSResult{}, ErrNegativeInput
	}
	if regime.Code == "" {
		return TDSResult{}, errUnknownRegime
	}

	projected := in.PeriodTaxableIncome * PeriodsPerYear
	net := max0(projected - regime.StandardDeduction)

	tax := marginalTax(net, regime.Slabs)
	rebate := false
	if net <= regime.RebateLimit {
		tax = 0
		rebate = true
	}
	annual := RoundRupee(tax + tax*regime.CessRate)

	outstanding := max0(annual - in.AlreadyWithheld)
	due := outstanding
	if in.RemainingPeriods > 0 {
		due = RoundRupee(outstanding / float64(in.RemainingPeriods))
	}

	return TDSResult{
		ProjectedAnnualIncome: projected,
		NetTaxableIncome:      net,
		AnnualLiability:       annual,
		RebateApplied:         rebate,
		AmountThisPeriod:      due,
	}, nil
}

// marginalTax sums each bracket's marginal contribution; it is never a flat
// rate on the whole amount.
func marginalTax(income float64, slabs []TaxSlab) float64 {
	var tax float64
	lower := 0.0
	for _, slab := range slabs {
		if slab.UpperBound < 0 || income <= slab.UpperBound {
			tax += (income - lower) * slab.Rate
			return tax
		}
		tax += (slab.UpperBound - lower) * slab.Rate
		lower = slab.UpperBound
	}
	return tax
}

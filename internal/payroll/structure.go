package payroll

import (
	"github.com/chetanpayroll/India-Payroll-sub000/internal/statutory"
)

// SynthesizeOptions controls the inverse CTC split. Zero values fall back to
// the conventional defaults below.
type SynthesizeOptions struct {
	BasicPercent       float64 // share of monthly cost paid as basic
	HRAPercent         float64 // house rent as a share of basic
	TransportAllowance float64 // fixed monthly transport component
	PFApplicable       bool
	ESIApplicable      bool
	PTaxApplicable     bool
}

const (
	defaultBasicPercent       = 0.40
	defaultHRAPercent         = 0.50
	defaultTransportAllowance = 1600
)

// StructureResult is the synthesized monthly breakdown. Infeasible means the
// requested total cost cannot cover the mandatory components; the balancing
// allowance is clamped to zero rather than going negative.
type StructureResult struct {
	Structure          SalaryStructure `json:"structure"`
	MonthlyCost        float64         `json:"monthly_cost"`
	MonthlyGross       float64         `json:"monthly_gross"`
	BalancingAllowance float64         `json:"balancing_allowance"`
	EmployerPF         float64         `json:"employer_pf"`
	EmployerESI        float64         `json:"employer_esi"`
	Infeasible         bool            `json:"infeasible"`
	Note               string          `json:"note,omitempty"`
}

// BalancingAllowanceName is the component the synthesizer solves for.
const BalancingAllowanceName = "special allowance"

// Synthesize derives a monthly component breakdown from an annual total cost
// such that basic + fixed allowances + balancing allowance + employer-side
// statutory costs equal totalCost/12.
//
// The employer insurance contribution depends on gross, which depends on the
// balancing allowance being solved for. The circularity is resolved with a
// two-pass approximation: solve ignoring insurance, check eligibility against
// the resulting gross, then subtract the now-known employer cost once. This
// is an accepted approximation, not a fixed-point solution; results within a
// few rupees of the eligibility threshold may differ from an exact solve.
func Synthesize(annualTotalCost float64, opts SynthesizeOptions, rates RateSet) (StructureResult, error) {
	if annualTotalCost < 0 {
		return StructureResult{}, statutory.ErrNegativeInput
	}

	if opts.BasicPercent <= 0 {
		opts.BasicPercent = defaultBasicPercent
	}
	if opts.HRAPercent <= 0 {
		opts.HRAPercent = defaultHRAPercent
	}
	if opts.TransportAllowance <= 0 {
		opts.TransportAllowance = defaultTransportAllowance
	}

	monthlyCost := annualTotalCost / 12
	basic := statutory.RoundRupee(monthlyCost * opts.BasicPercent)
	houseRent := statutory.RoundRupee(basic * opts.HRAPercent)
	transport := opts.TransportAllowance

	res := StructureResult{MonthlyCost: monthlyCost}

	if opts.PFApplicable {
		pf, err := statutory.CalculatePF(statutory.PFInput{BasicWage: basic}, rates.PF)
		if err != nil {
			return StructureResult{}, err
		}
		res.EmployerPF = pf.Employer.Total
	}

	// First pass: balancing allowance ignoring employer insurance cost.
	balancing := monthlyCost - basic - houseRent - transport - res.EmployerPF
	if balancing < 0 {
		balancing = 0
		res.Infeasible = true
	}
	gross := basic + houseRent + transport + balancing

	// Second pass: if the first-pass gross is insurance-eligible, fund the
	// employer share out of the balancing allowance and recompute gross once.
	if opts.ESIApplicable && gross <= rates.ESI.WageLimit {
		res.EmployerESI = statutory.CeilRupee(gross * rates.ESI.EmployerRate)
		balancing -= res.EmployerESI
		if balancing < 0 {
			balancing = 0
			res.Infeasible = true
		}
		gross = basic + houseRent + transport + balancing
	}

	balancing = statutory.RoundRupee(balancing)
	gross = basic + houseRent + transport + balancing

	res.BalancingAllowance = balancing
	res.MonthlyGross = gross
	res.Structure = SalaryStructure{
		Basic:          basic,
		HouseRent:      houseRent,
		Transport:      transport,
		Special:        []Allowance{{Name: BalancingAllowanceName, Amount: balancing}},
		PFApplicable:   opts.PFApplicable,
		ESIApplicable:  opts.ESIApplicable,
		PTaxApplicable: opts.PTaxApplicable,
	}
	if res.Infeasible {
		res.Note = "requested total cost is too low to cover mandatory components"
	}

	return res, nil
}

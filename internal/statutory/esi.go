package statutory

// ESIRates is the state insurance contribution schedule.
type ESIRates struct {
	WageLimit           float64 // eligibility ceiling on gross wage
	DisabilityWageLimit float64 // raised ceiling for employees with disability
	EmployeeRate        float64
	EmployerRate        float64
	MinDailyWage        float64 // below this average daily wage the employee share is waived
}

type ESIInput struct {
	GrossWage     float64
	DaysWorked    int
	HasDisability bool
	// ForcedEligibility models "eligible at the start of a contribution cycle,
	// stays eligible for that cycle even if the wage later rises". Cycle state
	// is the caller's responsibility; this calculator is stateless per call.
	ForcedEligibility bool
}

type ESIResult struct {
	Eligible       bool    `json:"eligible"`
	EmployeeShare  float64 `json:"employee_share"`
	EmployerShare  float64 `json:"employer_share"`
	EmployeeWaived bool    `json:"employee_waived"`
}

// CalculateESI computes the insurance contribution for one period.
//
// Both shares round UP to the next whole rupee; the scheme mandates ceiling
// rounding, so RoundRupee must not be used here. When the average daily wage
// falls below MinDailyWage the employee share alone is waived, the employer
// share is still owed.
func CalculateESI(in ESIInput, rates ESIRates) (ESIResult, error) {
	if in.GrossWage < 0 || in.DaysWorked < 0 {
		return ESIResult{}, ErrNegativeInput
	}

	limit := rates.WageLimit
	if in.HasDisability {
		limit = rates.DisabilityWageLimit
	}

	eligible := in.GrossWage <= limit || in.ForcedEligibility
	if !eligible {
		return ESIResult{}, nil
	}

	res := ESIResult{
		Eligible:      true,
		EmployeeShare: CeilRupee(in.GrossWage * rates.EmployeeRate),
		EmployerShare: CeilRupee(in.GrossWage * rates.EmployerRate),
	}

	if in.DaysWorked > 0 {
		avgDaily := in.GrossWage / float64(in.DaysWorked)
		if avgDaily < rates.MinDailyWage {
			res.EmployeeShare = 0
			res.EmployeeWaived = true
		}
	}

	return res, nil
}

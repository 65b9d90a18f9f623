package statutory

// PFRates is the EPF contribution schedule. Values are injected so tests and
// future effective dates can substitute alternates without global mutation.
type PFRates struct {
	WageCeiling      float64 // contribution base cap on basic wage
	EmployeeRate     float64
	EmployerFundRate float64 // employer EPF share
	PensionRate      float64 // EPS share, carved out of the employer 12%
	PensionCeiling   float64 // absolute rupee cap on the EPS share
	EDLIRate         float64
	AdminRate        float64
	EDLIAdminRate    float64
}

// PFInput describes one employee's provident fund situation for a period.
type PFInput struct {
	BasicWage           float64
	InternationalWorker bool
	Exempted            bool
}

// EmployerPFBreakdown splits the employer obligation into its statutory
// sub-accounts. Each sub-component is rounded independently before Total.
type EmployerPFBreakdown struct {
	Fund      float64 `json:"fund"`
	Pension   float64 `json:"pension"`
	EDLI      float64 `json:"edli"`
	Admin     float64 `json:"admin"`
	EDLIAdmin float64 `json:"edli_admin"`
	Total     float64 `json:"total"`
}

type PFResult struct {
	EmployeeShare float64             `json:"employee_share"`
	Employer      EmployerPFBreakdown `json:"employer"`
	WasCapped     bool                `json:"was_capped"`
}

// CalculatePF computes both sides of the EPF contribution for one period.
//
// The contribution base is min(basicWage, WageCeiling). The EPS sub-component
// carries its own absolute rupee ceiling on top of the wage ceiling; the two
// caps are independent. An exempted establishment gets a fully-shaped zero
// result, never a nil. An international worker zeroes only the pension
// sub-component, the rest of the employer share stays owed.
func CalculatePF(in PFInput, rates PFRates) (PFResult, error) {
	if in.BasicWage < 0 {
		return PFResult{}, ErrNegativeInput
	}
	if in.Exempted {
		return PFResult{}, nil
	}

	base := in.BasicWage
	capped := false
	if base > rates.WageCeiling {
		base = rates.WageCeiling
		capped = true
	}

	pension := RoundRupee(base * rates.PensionRate)
	if pension > rates.PensionCeiling {
		pension = rates.PensionCeiling
	}
	if in.InternationalWorker {
		pension = 0
	}

	employer := EmployerPFBreakdown{
		Fund:      RoundRupee(base * rates.EmployerFundRate),
		Pension:   pension,
		EDLI:      RoundRupee(base * rates.EDLIRate),
		Admin:     RoundRupee(base * rates.AdminRate),
		EDLIAdmin: RoundRupee(base * rates.EDLIAdminRate),
	}
	employer.Total = employer.Fund + employer.Pension + employer.EDLI + employer.Admin + employer.EDLIAdmin

	return PFResult{
		EmployeeShare: RoundRupee(base * rates.EmployeeRate),
		Employer:      employer,
		WasCapped:     capped,
	}, nil
}

package statutory

import "time"

// PTaxSlab is one row of a state's professional tax schedule. A slab may carry
// a month override: in that calendar month the override amount replaces the
// regular amount (states use this to round an irregular monthly figure to a
// clean annual total).
type PTaxSlab struct {
	Min            float64
	Max            float64
	Amount         float64
	OverrideMonth  time.Month
	OverrideAmount float64
}

// GenderExemption is an eligibility rule, not a rate rule: it is checked
// before slab lookup.
type GenderExemption struct {
	Gender   string
	MaxGross float64
}

type PTaxTable struct {
	State     string
	Slabs     []PTaxSlab
	Exemption *GenderExemption
}

// PTaxTables maps a state code to its schedule. States absent from the map
// levy no professional tax.
type PTaxTables map[string]PTaxTable

// CalculateProfessionalTax looks up the monthly professional tax for a state.
//
// Unknown states fail open to zero rather than erroring: most states levy
// nothing and payroll must not block on them.
func CalculateProfessionalTax(tables PTaxTables, state string, grossWage float64, gender string, month time.Month) (float64, error) {
	if grossWage < 0 {
		return 0, ErrNegativeInput
	}

	table, ok := tables[state]
	if !ok {
		return 0, nil
	}

	if ex := table.Exemption; ex != nil && ex.Gender == gender && grossWage <= ex.MaxGross {
		return 0, nil
	}

	for _, slab := range table.Slabs {
		if grossWage < slab.Min || grossWage > slab.Max {
			continue
		}
		if slab.OverrideMonth != 0 && slab.OverrideMonth == month {
			return slab.OverrideAmount, nil
		}
		return slab.Amount, nil
	}

	return 0, nil
}

package statutory

import "time"

// Regime codes accepted by the withholding calculator.
const (
	RegimeOld = "old"
	RegimeNew = "new"
)

// State codes carrying a professional tax schedule in the default tables.
const (
	StateMaharashtra   = "MH"
	StateKarnataka     = "KA"
	StateWestBengal    = "WB"
	StateMadhyaPradesh = "MP"
	StateGujarat       = "GJ"
)

// The Default* constructors return fresh copies on every call so callers hold
// snapshots: a rate revision never mutates tables already handed out.

func DefaultPFRates() PFRates {
	return PFRates{
		WageCeiling:      15000,
		EmployeeRate:     0.12,
		EmployerFundRate: 0.0367,
		PensionRate:      0.0833,
		PensionCeiling:   1250,
		EDLIRate:         0.005,
		AdminRate:        0.005,
		EDLIAdminRate:    0.0001,
	}
}

func DefaultESIRates() ESIRates {
	return ESIRates{
		WageLimit:           21000,
		DisabilityWageLimit: 25000,
		EmployeeRate:        0.0075,
		EmployerRate:        0.0325,
		MinDailyWage:        176,
	}
}

// DefaultPTaxTables returns the monthly professional tax schedules. Slab
// boundaries are inclusive on both ends. Maharashtra charges 300 instead of
// 200 in February so the annual total lands on 2500, and exempts women
// earning up to 25000; both quirks are statutory, not data-entry noise.
func DefaultPTaxTables() PTaxTables {
	return PTaxTables{
		StateMaharashtra: {
			State: StateMaharashtra,
			Slabs: []PTaxSlab{
				{Min: 0, Max: 7500, Amount: 0},
				{Min: 7501, Max: 10000, Amount: 175},
				{Min: 10001, Max: maxWage, Amount: 200, OverrideMonth: time.February, OverrideAmount: 300},
			},
			Exemption: &GenderExemption{Gender: "female", MaxGross: 25000},
		},
		StateKarnataka: {
			State: StateKarnataka,
			Slabs: []PTaxSlab{
				{Min: 0, Max: 24999, Amount: 0},
				{Min: 25000, Max: maxWage, Amount: 200},
			},
		},
		StateWestBengal: {
			State: StateWestBengal,
			Slabs: []PTaxSlab{
				{Min: 0, Max: 10000, Amount: 0},
				{Min: 10001, Max: 15000, Amount: 110},
				{Min: 15001, Max: 25000, Amount: 130},
				{Min: 25001, Max: 40000, Amount: 150},
				{Min: 40001, Max: maxWage, Amount: 200},
			},
		},
		StateMadhyaPradesh: {
			State: StateMadhyaPradesh,
			Slabs: []PTaxSlab{
				{Min: 0, Max: 18750, Amount: 0},
				{Min: 18751, Max: maxWage, Amount: 208, OverrideMonth: time.February, OverrideAmount: 212},
			},
		},
		StateGujarat: {
			State: StateGujarat,
			Slabs: []PTaxSlab{
				{Min: 0, Max: 12000, Amount: 0},
				{Min: 12001, Max: maxWage, Amount: 200},
			},
		},
	}
}

func DefaultTaxRegimes() map[string]TaxRegime {
	return map[string]TaxRegime{
		RegimeOld: {
			Code:              RegimeOld,
			StandardDeduction: 50000,
			RebateLimit:       500000,
			Slabs: []TaxSlab{
				{UpperBound: 250000, Rate: 0},
				{UpperBound: 500000, Rate: 0.05},
				{UpperBound: 1000000, Rate: 0.20},
				{UpperBound: -1, Rate: 0.30},
			},
			CessRate: 0.04,
		},
		RegimeNew: {
			Code:              RegimeNew,
			StandardDeduction: 75000,
			RebateLimit:       700000,
			Slabs: []TaxSlab{
				{UpperBound: 300000, Rate: 0},
				{UpperBound: 700000, Rate: 0.05},
				{UpperBound: 1000000, Rate: 0.10},
				{UpperBound: 1200000, Rate: 0.15},
				{UpperBound: 1500000, Rate: 0.20},
				{UpperBound: -1, Rate: 0.30},
			},
			CessRate: 0.04,
		},
	}
}

func DefaultGratuityRates() GratuityRates {
	return GratuityRates{
		ThresholdYears: 5,
		LowerBandDays:  21,
		HigherBandDays: 30,
	}
}

// maxWage is an open upper bound for top slabs.
const maxWage = 1 << 40

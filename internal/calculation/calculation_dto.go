package calculation

import "github.com/chetanpayroll/India-Payroll-sub000/internal/statutory"

type GratuityRequest struct {
	MonthlyBasicWage float64 `json:"monthly_basic_wage" binding:"required,min=0"`
	JoinDate         string  `json:"join_date" binding:"required"`  // YYYY-MM-DD
	LeaveDate        string  `json:"leave_date" binding:"required"` // YYYY-MM-DD
}

type GratuityResponse struct {
	statutory.GratuityResult
}

type StructureRequest struct {
	AnnualTotalCost    float64 `json:"annual_total_cost" binding:"required,min=0"`
	BasicPercent       float64 `json:"basic_percent" binding:"omitempty,gt=0,lte=1"`
	HRAPercent         float64 `json:"hra_percent" binding:"omitempty,gt=0,lte=1"`
	TransportAllowance float64 `json:"transport_allowance" binding:"omitempty,min=0"`
	PFApplicable       *bool   `json:"pf_applicable"`
	ESIApplicable      *bool   `json:"esi_applicable"`
	PTaxApplicable     *bool   `json:"ptax_applicable"`
}

type WithholdingRequest struct {
	PeriodTaxableIncome float64 `json:"period_taxable_income" binding:"required,min=0"`
	AlreadyWithheld     float64 `json:"already_withheld" binding:"omitempty,min=0"`
	TaxRegime           string  `json:"tax_regime" binding:"required"`
	Period              string  `json:"period" binding:"required"` // YYYY-MM
}

type WithholdingResponse struct {
	statutory.TDSResult
	RemainingPeriods int `json:"remaining_periods"`
}

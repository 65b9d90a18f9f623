package payroll

import (
	"time"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/statutory"
)

// Allowance is one named salary component.
type Allowance struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SalaryStructure is the immutable monthly snapshot owned by the employee
// record. Amounts are whole-rupee monthly figures.
type SalaryStructure struct {
	Basic               float64     `json:"basic"`
	HouseRent           float64     `json:"house_rent"`
	Transport           float64     `json:"transport"`
	Special             []Allowance `json:"special,omitempty"`
	PFApplicable        bool        `json:"pf_applicable"`
	ESIApplicable       bool        `json:"esi_applicable"`
	PTaxApplicable      bool        `json:"ptax_applicable"`
	PFExempted          bool        `json:"pf_exempted"`
	InternationalWorker bool        `json:"international_worker"`
}

// OvertimeHours buckets overtime by the multiplier it attracts.
type OvertimeHours struct {
	Regular float64 `json:"regular"`
	Weekend float64 `json:"weekend"`
	Holiday float64 `json:"holiday"`
}

// AttendanceRecord is one employee's attendance for one period.
type AttendanceRecord struct {
	EmployeeID    string        `json:"employee_id"`
	DaysWorked    int           `json:"days_worked"`
	LossOfPayDays int           `json:"loss_of_pay_days"`
	Overtime      OvertimeHours `json:"overtime"`
}

// PeriodContext is the calendar month all proration is relative to. Only the
// rules that explicitly specify a fixed divisor (overtime, gratuity) ignore
// the actual days in the month.
type PeriodContext struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

func (p PeriodContext) DaysInMonth() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RemainingFiscalPeriods counts payroll periods left in the Indian fiscal
// year (April to March), including the current one. April returns 12, March
// returns 1.
func (p PeriodContext) RemainingFiscalPeriods() int {
	idx := (int(p.Month) + 8) % 12 // April = 0 ... March = 11
	return 12 - idx
}

func (p PeriodContext) String() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// EarningsBreakdown holds period-adjusted earnings. Every component is
// rounded before Gross is summed; Gross is always the sum of the parts.
type EarningsBreakdown struct {
	Basic     float64     `json:"basic"`
	HouseRent float64     `json:"house_rent"`
	Transport float64     `json:"transport"`
	Special   []Allowance `json:"special,omitempty"`
	Overtime  float64     `json:"overtime"`
	Gross     float64     `json:"gross"`
}

// DeductionBreakdown holds statutory deductions for one employee. A nil
// calculator result means the scheme was not applicable ("not owed"), which
// is distinct from a calculator-produced zero.
type DeductionBreakdown struct {
	PF              *statutory.PFResult  `json:"pf,omitempty"`
	ESI             *statutory.ESIResult `json:"esi,omitempty"`
	ProfessionalTax *float64             `json:"professional_tax,omitempty"`
	TDS             *statutory.TDSResult `json:"tds,omitempty"`
	TotalEmployee   float64              `json:"total_employee"`
	TotalEmployer   float64              `json:"total_employer"`
}

// EmployeeRecord is the processor's per-employee input, assembled from the
// employee store by the run service.
type EmployeeRecord struct {
	ID                string
	Name              string
	Gender            string
	State             string
	TaxRegime         string // empty = no income-tax withholding
	HasDisability     bool
	ESIForcedEligible bool
	TaxWithheldYTD    float64
	Structure         SalaryStructure
}

// PayrollItem is one employee's finished calculation.
type PayrollItem struct {
	EmployeeID          string             `json:"employee_id"`
	EmployeeName        string             `json:"employee_name"`
	Earnings            EarningsBreakdown  `json:"earnings"`
	Deductions          DeductionBreakdown `json:"deductions"`
	NetPay              float64            `json:"net_pay"`
	AttendanceDefaulted bool               `json:"attendance_defaulted"`
}

// PayrollRunResult aggregates a whole run. It is created fresh per
// invocation and never mutated afterwards; recalculation produces a new one.
type PayrollRunResult struct {
	Period            PeriodContext `json:"period"`
	Items             []PayrollItem `json:"items"`
	TotalGross        float64       `json:"total_gross"`
	TotalDeductions   float64       `json:"total_deductions"`
	TotalNet          float64       `json:"total_net"`
	TotalEmployerCost float64       `json:"total_employer_cost"`
}

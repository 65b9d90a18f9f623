package payroll

import (
	"github.com/chetanpayroll/India-Payroll-sub000/internal/statutory"
)

// Overtime multipliers and the fixed hourly-rate divisor. The hourly rate is
// always basic/30/8 by convention, even in months that do not have 30 days;
// mixing this with the calendar-accurate proration divisor is a correctness
// bug, not a style choice.
const (
	overtimeDivisorDays  = 30
	overtimeDivisorHours = 8
	overtimeRegularRate  = 1.25
	overtimePremiumRate  = 1.5
)

// Prorate converts a monthly salary structure plus attendance into
// period-adjusted earnings. Each fixed component is scaled by
// payableDays/daysInPeriod and rounded half-up independently before the gross
// is summed.
func Prorate(s SalaryStructure, att AttendanceRecord, period PeriodContext) (EarningsBreakdown, error) {
	if s.Basic < 0 || s.HouseRent < 0 || s.Transport < 0 ||
		att.LossOfPayDays < 0 || att.DaysWorked < 0 ||
		att.Overtime.Regular < 0 || att.Overtime.Weekend < 0 || att.Overtime.Holiday < 0 {
		return EarningsBreakdown{}, statutory.ErrNegativeInput
	}
	for _, a := range s.Special {
		if a.Amount < 0 {
			return EarningsBreakdown{}, statutory.ErrNegativeInput
		}
	}

	daysInPeriod := period.DaysInMonth()
	if daysInPeriod <= 0 {
		return EarningsBreakdown{}, nil
	}

	payableDays := daysInPeriod - att.LossOfPayDays
	if payableDays < 0 {
		payableDays = 0
	}
	factor := float64(payableDays) / float64(daysInPeriod)

	out := EarningsBreakdown{
		Basic:     statutory.RoundRupee(s.Basic * factor),
		HouseRent: statutory.RoundRupee(s.HouseRent * factor),
		Transport: statutory.RoundRupee(s.Transport * factor),
	}
	for _, a := range s.Special {
		out.Special = append(out.Special, Allowance{
			Name:   a.Name,
			Amount: statutory.RoundRupee(a.Amount * factor),
		})
	}

	hourlyRate := s.Basic / overtimeDivisorDays / overtimeDivisorHours
	out.Overtime = statutory.RoundRupee(
		hourlyRate*overtimeRegularRate*att.Overtime.Regular +
			hourlyRate*overtimePremiumRate*(att.Overtime.Weekend+att.Overtime.Holiday))

	out.Gross = out.Basic + out.HouseRent + out.Transport + out.Overtime
	for _, a := range out.Special {
		out.Gross += a.Amount
	}

	return out, nil
}

// FullAttendance is the explicit policy substituted when a known employee has
// no attendance record for the period: every day payable, no overtime.
func FullAttendance(employeeID string, period PeriodContext) AttendanceRecord {
	return AttendanceRecord{
		EmployeeID: employeeID,
		DaysWorked: period.DaysInMonth(),
	}
}

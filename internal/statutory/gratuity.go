package statutory

import (
	"errors"
	"fmt"
	"time"
)

// GratuityRates is the end-of-service benefit schedule: the first
// ThresholdYears of service accrue at LowerBandDays per year, everything
// beyond at HigherBandDays per year.
type GratuityRates struct {
	ThresholdYears int
	LowerBandDays  float64
	HigherBandDays float64
}

type GratuityResult struct {
	YearsUnderThreshold float64 `json:"years_under_threshold"`
	YearsAboveThreshold float64 `json:"years_above_threshold"`
	Amount              float64 `json:"amount"`
	BreakdownNote       string  `json:"breakdown_note"`
}

var errLeaveBeforeJoin = errors.New("leave date cannot be before join date")

// CalculateGratuity computes the end-of-service benefit at separation.
//
// Service duration is decomposed calendar-aware into years, months and days;
// the partial final year enters as years + months/12 + days/360, never
// truncated to whole years. The daily wage is always basicWage/30 regardless
// of actual calendar days, a fixed-divisor convention distinct from the
// calendar-accurate proration used for monthly earnings.
func CalculateGratuity(basicWage float64, joinDate, leaveDate time.Time, rates GratuityRates) (GratuityResult, error) {
	if basicWage < 0 {
		return GratuityResult{}, ErrNegativeInput
	}
	if leaveDate.Before(joinDate) {
		return GratuityResult{}, errLeaveBeforeJoin
	}

	years, months, days := serviceSpan(joinDate, leaveDate)
	totalYears := float64(years) + float64(months)/12 + float64(days)/360

	threshold := float64(rates.ThresholdYears)
	under := totalYears
	above := 0.0
	if totalYears > threshold {
		under = threshold
		above = totalYears - threshold
	}

	dailyWage := basicWage / 30
	amount := RoundRupee(dailyWage*rates.LowerBandDays*under + dailyWage*rates.HigherBandDays*above)

	note := fmt.Sprintf("%dy %dm %dd service: %.4f years @ %.0f days/year", years, months, days, under, rates.LowerBandDays)
	if above > 0 {
		note += fmt.Sprintf(" + %.4f years @ %.0f days/year", above, rates.HigherBandDays)
	}

	return GratuityResult{
		YearsUnderThreshold: under,
		YearsAboveThreshold: above,
		Amount:              amount,
		BreakdownNote:       note,
	}, nil
}

// serviceSpan decomposes the interval into whole years, months and days:
// the largest number of calendar months that fits, then leftover days. Month
// addition clamps to the end of shorter months (Jan 31 + 1 month = Feb 28).
func serviceSpan(from, to time.Time) (years, months, days int) {
	n := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if n > 0 && addMonthsClamped(from, n).After(to) {
		n--
	}
	if n < 0 {
		n = 0
	}

	anchor := addMonthsClamped(from, n)
	days = int(to.Sub(anchor).Hours() / 24)
	return n / 12, n % 12, days
}

func addMonthsClamped(t time.Time, months int) time.Time {
	total := t.Year()*12 + int(t.Month()) - 1 + months
	year, month := total/12, time.Month(total%12+1)

	day := t.Day()
	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, t.Location()).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

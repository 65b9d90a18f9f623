package statutory

import (
	"errors"
	"math"
)

// ErrNegativeInput is returned when a monetary or day-count input that must
// never be negative arrives negative. Calculators reject instead of clamping.
var ErrNegativeInput = errors.New("monetary and day-count inputs cannot be negative")

// RoundRupee rounds to the nearest whole rupee, half up. Statutory schedules
// expect half-up rounding; truncation systematically underpays.
func RoundRupee(v float64) float64 {
	return math.Floor(v + 0.5)
}

// CeilRupee rounds up to the next whole rupee. ESI is the only scheme in this
// engine that rounds up; every other calculator uses RoundRupee.
func CeilRupee(v float64) float64 {
	return math.Ceil(v)
}

// MinorUnits converts a rupee amount to integer paise for wire formats.
func MinorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

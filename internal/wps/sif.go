// Package wps serializes finalized payroll runs into the wage-protection
// interchange formats consumed by banks and the labour regulator.
package wps

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Record-type tags mandated by the interbank salary file layout.
const (
	headerTag = "SCR"
	detailTag = "EDR"
)

var (
	ErrNegativeAmount = errors.New("wps: monetary fields cannot be negative")
	ErrNoRecords      = errors.New("wps: salary file requires at least one employee record")
)

// FileHeader carries the employer-level fields of the salary control record.
type FileHeader struct {
	EmployerRegistrationID string
	CompanyName            string
	EstablishmentNumber    string
	PaymentDate            time.Time
	Period                 string // MMYYYY
}

// EmployeeRecord is one salary detail line. All amounts are minor units
// (paise); the format encodes them as zero-padded integers with no
// decimal point.
type EmployeeRecord struct {
	EmployeeID      string
	Name            string
	BankShortName   string
	AccountNumber   string
	BasicPaise      int64
	AllowancesPaise int64
	DeductionsPaise int64
	NetPaise        int64
	AgentReference  string
}

// BuildSIF renders the full salary file: one SCR header followed by one
// EDR line per employee, pipe-delimited, CRLF line endings. Field widths
// and padding are bank-validated; any deviation invalidates the file.
func BuildSIF(header FileHeader, records []EmployeeRecord) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	var totalNet int64
	for _, rec := range records {
		if rec.BasicPaise < 0 || rec.AllowancesPaise < 0 || rec.DeductionsPaise < 0 || rec.NetPaise < 0 {
			return "", fmt.Errorf("%w: employee %s", ErrNegativeAmount, rec.EmployeeID)
		}
		totalNet += rec.NetPaise
	}

	var b strings.Builder

	b.WriteString(strings.Join([]string{
		headerTag,
		padRight(header.EmployerRegistrationID, 14),
		padRight(header.CompanyName, 100),
		padRight(header.EstablishmentNumber, 20),
		header.PaymentDate.Format("02012006"),
		header.Period,
		fmt.Sprintf("%08d", len(records)),
		fmt.Sprintf("%015d", totalNet),
	}, "|"))
	b.WriteString("\r\n")

	for i, rec := range records {
		b.WriteString(strings.Join([]string{
			detailTag,
			fmt.Sprintf("%08d", i+1),
			padRight(rec.EmployeeID, 20),
			padRight(rec.Name, 100),
			padRight(rec.BankShortName, 23),
			padRight(stripWhitespace(rec.AccountNumber), 23),
			fmt.Sprintf("%015d", rec.BasicPaise),
			fmt.Sprintf("%015d", rec.AllowancesPaise),
			fmt.Sprintf("%015d", rec.DeductionsPaise),
			fmt.Sprintf("%015d", rec.NetPaise),
			padRight(rec.AgentReference, 20),
		}, "|"))
		b.WriteString("\r\n")
	}

	return b.String(), nil
}

// SIFFileName follows the registrar naming convention:
// <registration id>_<DDMMYYYYHHMMSS>.SIF
func SIFFileName(employerRegistrationID string, createdAt time.Time) string {
	return fmt.Sprintf("%s_%s.SIF",
		strings.TrimSpace(employerRegistrationID),
		createdAt.Format("02012006150405"),
	)
}

// PeriodLabel formats a calendar month as the MMYYYY token the header
// expects.
func PeriodLabel(month time.Month, year int) string {
	return fmt.Sprintf("%02d%04d", int(month), year)
}

// padRight space-pads to width, truncating anything longer. Truncation
// is deliberate: an oversized field shifts every following field and the
// bank rejects the whole file.
func padRight(s string, width int) string {
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

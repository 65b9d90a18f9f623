package wps

import (
	"fmt"
	"strings"
	"time"
)

// SummaryRow is one employee line of the regulator-facing summary
// report. Amounts are minor units and rendered with two decimals.
type SummaryRow struct {
	Identifier      string
	Name            string
	NationalID      string
	Nationality     string
	Designation     string
	Department      string
	JoinDate        time.Time
	BasicPaise      int64
	AllowancesPaise int64
	TotalPaise      int64
	VisaType        string
}

var summaryColumns = []string{
	"identifier", "name", "national_id", "nationality", "designation",
	"department", "join_date", "basic", "allowances", "total", "visa_type",
}

// BuildSummaryCSV renders the regulator summary. Every field is quoted,
// including numeric ones; the receiving portal's parser requires it.
func BuildSummaryCSV(rows []SummaryRow) string {
	var b strings.Builder

	writeCSVLine(&b, summaryColumns)

	for _, row := range rows {
		joinDate := ""
		if !row.JoinDate.IsZero() {
			joinDate = row.JoinDate.Format("2006-01-02")
		}
		writeCSVLine(&b, []string{
			row.Identifier,
			row.Name,
			row.NationalID,
			row.Nationality,
			row.Designation,
			row.Department,
			joinDate,
			formatPaise(row.BasicPaise),
			formatPaise(row.AllowancesPaise),
			formatPaise(row.TotalPaise),
			row.VisaType,
		})
	}

	return b.String()
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

func formatPaise(p int64) string {
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	return fmt.Sprintf("%s%d.%02d", sign, p/100, p%100)
}

package wps

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummaryCSV_HeaderAndQuoting(t *testing.T) {
	out := BuildSummaryCSV([]SummaryRow{{
		Identifier:      "EMP-001",
		Name:            `Ravi "RK" Kumar`,
		NationalID:      "ABCDE1234F",
		Nationality:     "IN",
		Designation:     "Fitter",
		Department:      "Assembly",
		JoinDate:        time.Date(2019, time.March, 11, 0, 0, 0, 0, time.UTC),
		BasicPaise:      1500000,
		AllowancesPaise: 420050,
		TotalPaise:      1920050,
		VisaType:        "RESIDENT",
	}})

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	assert.Len(t, lines, 2)
	assert.Equal(t,
		`"identifier","name","national_id","nationality","designation","department","join_date","basic","allowances","total","visa_type"`,
		lines[0])
	assert.Equal(t,
		`"EMP-001","Ravi ""RK"" Kumar","ABCDE1234F","IN","Fitter","Assembly","2019-03-11","15000.00","4200.50","19200.50","RESIDENT"`,
		lines[1])
}

func TestBuildSummaryCSV_ZeroJoinDateLeftEmpty(t *testing.T) {
	out := BuildSummaryCSV([]SummaryRow{{Identifier: "EMP-002"}})
	assert.Contains(t, out, `"EMP-002","","","","","","","0.00","0.00","0.00",""`)
}

func TestFormatPaise(t *testing.T) {
	assert.Equal(t, "0.05", formatPaise(5))
	assert.Equal(t, "123.40", formatPaise(12340))
	assert.Equal(t, "-12.01", formatPaise(-1201))
}

package attendance

import (
	"time"

	"github.com/google/uuid"
)

// PeriodAttendance is the per-employee monthly attendance summary the
// payroll processor consumes. One row per employee per period.
type PeriodAttendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_attendance_employee_period"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_period"`
	Period     string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_attendance_employee_period"` // YYYY-MM

	DaysWorked    int `gorm:"not null;default:0"`
	LossOfPayDays int `gorm:"not null;default:0"`

	OvertimeRegularHours float64 `gorm:"not null;default:0"`
	OvertimeWeekendHours float64 `gorm:"not null;default:0"`
	OvertimeHolidayHours float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PeriodAttendance) TableName() string {
	return "period_attendances"
}

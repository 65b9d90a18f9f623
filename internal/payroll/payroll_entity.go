package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "DRAFT"
	StatusFinalized = "FINALIZED"
)

// PayrollRun is the persisted outcome of one batch calculation. Amounts
// are stored in minor units (paise) to avoid floating error; the float
// domain values are converted once at the persistence boundary.
type PayrollRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_run_company_period,unique"`
	Period    string    `gorm:"type:varchar(7);not null;index:idx_run_company_period,unique"` // YYYY-MM
	RunNumber int64     `gorm:"type:bigint;not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'DRAFT'"`

	EmployeeCount          int   `gorm:"not null;default:0"`
	TotalGrossPaise        int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductionsPaise   int64 `gorm:"type:bigint;not null;default:0"`
	TotalNetPaise          int64 `gorm:"type:bigint;not null;default:0"`
	TotalEmployerCostPaise int64 `gorm:"type:bigint;not null;default:0"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	FinalizedAt *time.Time `gorm:"index"`

	Items []PayrollRunItem `gorm:"foreignKey:RunID"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

type PayrollRunItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RunID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`

	EmployeeCode string `gorm:"type:varchar(30);not null"`
	EmployeeName string `gorm:"type:varchar(150);not null"`

	// Earnings
	BasicPaise     int64 `gorm:"type:bigint;not null;default:0"`
	HouseRentPaise int64 `gorm:"type:bigint;not null;default:0"`
	TransportPaise int64 `gorm:"type:bigint;not null;default:0"`
	SpecialPaise   int64 `gorm:"type:bigint;not null;default:0"`
	OvertimePaise  int64 `gorm:"type:bigint;not null;default:0"`
	GrossPaise     int64 `gorm:"type:bigint;not null;default:0"`

	// Employee-side deductions
	PFEmployeePaise      int64 `gorm:"type:bigint;not null;default:0"`
	ESIEmployeePaise     int64 `gorm:"type:bigint;not null;default:0"`
	ProfessionalTaxPaise int64 `gorm:"type:bigint;not null;default:0"`
	TDSPaise             int64 `gorm:"type:bigint;not null;default:0"`
	TotalDeductionsPaise int64 `gorm:"type:bigint;not null;default:0"`

	// Employer-side shadow contributions, reported but never deducted.
	PFEmployerPaise  int64 `gorm:"type:bigint;not null;default:0"`
	ESIEmployerPaise int64 `gorm:"type:bigint;not null;default:0"`

	NetPayPaise int64 `gorm:"type:bigint;not null;default:0"`

	AttendanceDefaulted bool `gorm:"not null;default:false"`

	CreatedAt time.Time
}

func (PayrollRunItem) TableName() string {
	return "payroll_run_items"
}

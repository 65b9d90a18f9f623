package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_employee_code_company"`
	Code      string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_code_company"`
	FullName  string    `gorm:"type:varchar(150);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	Gender    string    `gorm:"type:varchar(10)"`

	// Statutory identity
	State       string `gorm:"type:varchar(5)"` // professional tax jurisdiction code
	TaxRegime   string `gorm:"type:varchar(10)"`
	NationalID  string `gorm:"type:varchar(30)"`
	Nationality string `gorm:"type:varchar(5)"`

	// Organisation
	Designation string     `gorm:"type:varchar(100)"`
	Department  string     `gorm:"type:varchar(100)"`
	JoinDate    time.Time  `gorm:"type:date"`
	LeaveDate   *time.Time `gorm:"type:date"`
	VisaType    string     `gorm:"type:varchar(30)"`

	// Disbursement
	BankShortName  string `gorm:"type:varchar(23)"`
	BankAccount    string `gorm:"type:varchar(30)"`
	AgentReference string `gorm:"type:varchar(20)"`

	// Statutory flags
	PFApplicable        bool `gorm:"not null;default:true"`
	ESIApplicable       bool `gorm:"not null;default:true"`
	PTaxApplicable      bool `gorm:"not null;default:true"`
	PFExempted          bool `gorm:"not null;default:false"`
	InternationalWorker bool `gorm:"not null;default:false"`
	HasDisability       bool `gorm:"not null;default:false"`

	// Monthly structure, minor units (paise) to avoid floating error.
	BasicPaise     int64 `gorm:"type:bigint;not null;default:0"`
	HouseRentPaise int64 `gorm:"type:bigint;not null;default:0"`
	TransportPaise int64 `gorm:"type:bigint;not null;default:0"`
	SpecialPaise   int64 `gorm:"type:bigint;not null;default:0"`

	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

package company

import (
	"time"

	"github.com/google/uuid"
)

// Statutory registration types a company can hold. The WPS registration
// carries the employer id and establishment number stamped into the
// salary file header.
const (
	RegistrationWPS  = "WPS"
	RegistrationPF   = "PF"
	RegistrationESI  = "ESI"
	RegistrationPTax = "PTAX"
)

type CompanyRegistration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_company_registration_type"`
	Type      string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_company_registration_type"`
	Number    string    `gorm:"type:varchar(30);not null"`

	// WPS only: the establishment number within the employer account.
	EstablishmentNumber string `gorm:"type:varchar(20)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyRegistration) TableName() string {
	return "company_registrations"
}

package company

import (
	"context"
	"database/sql"
	"errors"

	companyerrors "github.com/chetanpayroll/India-Payroll-sub000/internal/company/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	UpsertRegistration(ctx context.Context, companyID string, req UpsertRegistrationRequest) (CompanyResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	c := &Company{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		DefaultState: req.DefaultState,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return CompanyResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) UpsertRegistration(
	ctx context.Context,
	companyID string,
	req UpsertRegistrationRequest,
) (CompanyResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrCompanyNotFound
	}

	switch req.Type {
	case RegistrationWPS, RegistrationPF, RegistrationESI, RegistrationPTax:
	default:
		return CompanyResponse{}, companyerrors.ErrInvalidRegistrationType
	}

	reg := &CompanyRegistration{
		ID:                  uuid.New(),
		CompanyID:           companyUUID,
		Type:                req.Type,
		Number:              req.Number,
		EstablishmentNumber: req.EstablishmentNumber,
	}

	if err := s.repo.UpsertRegistration(ctx, reg); err != nil {
		return CompanyResponse{}, err
	}

	return s.GetByID(ctx, companyID)
}

func mapToResponse(c Company) CompanyResponse {
	resp := CompanyResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Email:        c.Email,
		DefaultState: c.DefaultState,
		IsActive:     c.IsActive,
	}
	for _, reg := range c.Registrations {
		resp.Registrations = append(resp.Registrations, RegistrationResponse{
			Type:                reg.Type,
			Number:              reg.Number,
			EstablishmentNumber: reg.EstablishmentNumber,
		})
	}
	return resp
}

// WPSRegistration extracts the wage-protection registration from a
// loaded company, or fails if none is on file.
func WPSRegistration(c *Company) (*CompanyRegistration, error) {
	for i := range c.Registrations {
		if c.Registrations[i].Type == RegistrationWPS {
			return &c.Registrations[i], nil
		}
	}
	return nil, companyerrors.ErrMissingWPSRegistration
}

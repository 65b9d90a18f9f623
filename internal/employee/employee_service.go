package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	employeeerrors "github.com/chetanpayroll/India-Payroll-sub000/internal/employee/errors"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/events"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/messaging/kafka"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/contextutil"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKeyPrefix = "employees:options:"

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
	}

	if req.Structure.Basic < 0 || req.Structure.HouseRent < 0 || req.Structure.Transport < 0 || req.Structure.Special < 0 {
		return EmployeeResponse{}, employeeerrors.ErrNegativeSalaryComponent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	seq, err := s.counter.GetNextValue(ctx, companyID, "EMPLOYEE")
	if err != nil {
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Code:        fmt.Sprintf("EMP-%05d", seq),
		FullName:    req.FullName,
		Email:       req.Email,
		Gender:      req.Gender,
		State:       req.State,
		TaxRegime:   req.TaxRegime,
		NationalID:  req.NationalID,
		Nationality: req.Nationality,
		Designation: req.Designation,
		Department:  req.Department,
		JoinDate:    joinDate,
		VisaType:    req.VisaType,

		BankShortName:  req.BankShortName,
		BankAccount:    req.BankAccount,
		AgentReference: req.AgentReference,

		PFApplicable:        boolOrDefault(req.PFApplicable, true),
		ESIApplicable:       boolOrDefault(req.ESIApplicable, true),
		PTaxApplicable:      boolOrDefault(req.PTaxApplicable, true),
		PFExempted:          req.PFExempted,
		InternationalWorker: req.InternationalWorker,
		HasDisability:       req.HasDisability,

		BasicPaise:     req.Structure.Basic,
		HouseRentPaise: req.Structure.HouseRent,
		TransportPaise: req.Structure.Transport,
		SpecialPaise:   req.Structure.Special,

		IsActive: true,
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:    "employee_created",
			EmployeeID:   emp.ID.String(),
			EmployeeCode: emp.Code,
			CompanyID:    companyID,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return EmployeeResponse{}, err
		}
		outboxEvent := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   emp.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		resp[i] = mapToResponse(emp)
	}
	return resp, nil
}

// GetOptions serves the lightweight id/code/name projection used by
// dropdowns. It is read far more often than the roster changes, so it
// is cached in Redis and deduplicated with singleflight.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var opts []EmployeeOptionResponse
			if err := json.Unmarshal([]byte(cached), &opts); err == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		emps, err := s.repo.FindActiveByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		opts := make([]EmployeeOptionResponse, len(emps))
		for i, emp := range emps {
			opts[i] = EmployeeOptionResponse{
				ID:       emp.ID.String(),
				Code:     emp.Code,
				FullName: emp.FullName,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(opts); err == nil {
				_ = s.rdb.Set(ctx, cacheKey, payload, 10*time.Minute).Err()
			}
		}

		return opts, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if req.Structure.Basic < 0 || req.Structure.HouseRent < 0 || req.Structure.Transport < 0 || req.Structure.Special < 0 {
		return EmployeeResponse{}, employeeerrors.ErrNegativeSalaryComponent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	emp.FullName = req.FullName
	emp.Email = req.Email
	emp.Gender = req.Gender
	emp.State = req.State
	emp.TaxRegime = req.TaxRegime
	emp.Designation = req.Designation
	emp.Department = req.Department
	emp.VisaType = req.VisaType
	emp.BankShortName = req.BankShortName
	emp.BankAccount = req.BankAccount
	emp.AgentReference = req.AgentReference
	emp.PFApplicable = boolOrDefault(req.PFApplicable, emp.PFApplicable)
	emp.ESIApplicable = boolOrDefault(req.ESIApplicable, emp.ESIApplicable)
	emp.PTaxApplicable = boolOrDefault(req.PTaxApplicable, emp.PTaxApplicable)
	emp.PFExempted = req.PFExempted
	emp.InternationalWorker = req.InternationalWorker
	emp.HasDisability = req.HasDisability
	emp.IsActive = boolOrDefault(req.IsActive, emp.IsActive)
	emp.BasicPaise = req.Structure.Basic
	emp.HouseRentPaise = req.Structure.HouseRent
	emp.TransportPaise = req.Structure.Transport
	emp.SpecialPaise = req.Structure.Special

	if err := qtx.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx, companyID)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetEmployeeOptionsKey(companyID)).Err(); err != nil {
		s.logger.Warn("invalidate employee options cache failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          emp.ID.String(),
		CompanyID:   emp.CompanyID.String(),
		Code:        emp.Code,
		FullName:    emp.FullName,
		Email:       emp.Email,
		Gender:      emp.Gender,
		State:       emp.State,
		TaxRegime:   emp.TaxRegime,
		Designation: emp.Designation,
		Department:  emp.Department,
		VisaType:    emp.VisaType,

		PFApplicable:        emp.PFApplicable,
		ESIApplicable:       emp.ESIApplicable,
		PTaxApplicable:      emp.PTaxApplicable,
		PFExempted:          emp.PFExempted,
		InternationalWorker: emp.InternationalWorker,
		HasDisability:       emp.HasDisability,
		IsActive:            emp.IsActive,

		Structure: SalaryStructureResponse{
			Basic:     emp.BasicPaise,
			HouseRent: emp.HouseRentPaise,
			Transport: emp.TransportPaise,
			Special:   emp.SpecialPaise,
		},
	}
	if !emp.JoinDate.IsZero() {
		resp.JoinDate = emp.JoinDate.Format("2006-01-02")
	}
	return resp
}

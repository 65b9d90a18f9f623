package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/apperror"

	"github.com/google/uuid"
)

var (
	errInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	errInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid period, expected YYYY-MM",
		http.StatusBadRequest,
	)
	errDaysExceedPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Days worked plus loss-of-pay days exceed the days in the period",
		http.StatusBadRequest,
	)
)

type Service interface {
	Record(ctx context.Context, companyID string, req RecordAttendanceRequest) (AttendanceResponse, error)
	GetByPeriod(ctx context.Context, companyID, period string) ([]AttendanceResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Record(
	ctx context.Context,
	companyID string,
	req RecordAttendanceRequest,
) (AttendanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, errInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, apperror.InvalidField("Employee Id")
	}

	periodStart, err := time.Parse("2006-01", req.Period)
	if err != nil {
		return AttendanceResponse{}, errInvalidPeriod
	}
	daysInMonth := time.Date(periodStart.Year(), periodStart.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if req.DaysWorked+req.LossOfPayDays > daysInMonth {
		return AttendanceResponse{}, errDaysExceedPeriod
	}

	row := &PeriodAttendance{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Period:     req.Period,

		DaysWorked:    req.DaysWorked,
		LossOfPayDays: req.LossOfPayDays,

		OvertimeRegularHours: req.OvertimeRegularHours,
		OvertimeWeekendHours: req.OvertimeWeekendHours,
		OvertimeHolidayHours: req.OvertimeHolidayHours,
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) GetByPeriod(ctx context.Context, companyID, period string) ([]AttendanceResponse, error) {
	if _, err := time.Parse("2006-01", period); err != nil {
		return nil, errInvalidPeriod
	}

	rows, err := s.repo.FindAllByCompanyAndPeriod(ctx, companyID, period)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func mapToResponse(a PeriodAttendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID.String(),
		CompanyID:     a.CompanyID.String(),
		EmployeeID:    a.EmployeeID.String(),
		Period:        a.Period,
		DaysWorked:    a.DaysWorked,
		LossOfPayDays: a.LossOfPayDays,

		OvertimeRegularHours: a.OvertimeRegularHours,
		OvertimeWeekendHours: a.OvertimeWeekendHours,
		OvertimeHolidayHours: a.OvertimeHolidayHours,
	}
}

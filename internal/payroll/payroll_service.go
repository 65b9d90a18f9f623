package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/attendance"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/company"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/employee"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/events"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/messaging/kafka"
	payrollerrors "github.com/chetanpayroll/India-Payroll-sub000/internal/payroll/errors"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/contextutil"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/counter"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/statutory"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/wps"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	RunPayroll(ctx context.Context, companyID string, req RunPayrollRequest) (RunResponse, error)
	GetAll(ctx context.Context, companyID string) ([]RunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (RunResponse, error)
	Finalize(ctx context.Context, companyID, id string) (RunResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	ExportSIF(ctx context.Context, companyID, id string) (SIFExport, error)
	ExportSummary(ctx context.Context, companyID, id string) (SummaryExport, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	atts      attendance.Repository
	companies company.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	processor *Processor
	cycles    CycleStore
	logger    *zap.Logger
}

type ServiceDeps struct {
	DB          *sql.DB
	Repo        Repository
	Employees   employee.Repository
	Attendances attendance.Repository
	Companies   company.Repository
	Counter     counter.Repository
	Outbox      kafka.OutboxRepository
	Processor   *Processor
	CycleStore  CycleStore
	Logger      *zap.Logger
}

func NewService(deps ServiceDeps) Service {
	l := zap.L().Named("payroll.service")
	if deps.Logger != nil {
		l = deps.Logger.Named("payroll.service")
	}
	proc := deps.Processor
	if proc == nil {
		proc = NewProcessor(DefaultRateSet(), l)
	}
	cycles := deps.CycleStore
	if cycles == nil {
		cycles = NewMemoryCycleStore()
	}
	return &service{
		db:        deps.DB,
		repo:      deps.Repo,
		employees: deps.Employees,
		atts:      deps.Attendances,
		companies: deps.Companies,
		counter:   deps.Counter,
		outbox:    deps.Outbox,
		processor: proc,
		cycles:    cycles,
		logger:    l,
	}
}

func parsePeriod(period string) (PeriodContext, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return PeriodContext{}, payrollerrors.ErrInvalidPeriodFormat
	}
	return PeriodContext{Month: t.Month(), Year: t.Year()}, nil
}

func (s *service) RunPayroll(
	ctx context.Context,
	companyID string,
	req RunPayrollRequest,
) (RunResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(companyID); err != nil {
		return RunResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	period, err := parsePeriod(req.Period)
	if err != nil {
		return RunResponse{}, err
	}

	exists, err := s.repo.HasRunForPeriod(ctx, companyID, req.Period)
	if err != nil {
		return RunResponse{}, err
	}
	if exists {
		return RunResponse{}, payrollerrors.ErrRunAlreadyExists
	}

	emps, err := s.employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return RunResponse{}, err
	}
	if len(emps) == 0 {
		return RunResponse{}, payrollerrors.ErrNoEmployees
	}

	attRows, err := s.atts.FindAllByCompanyAndPeriod(ctx, companyID, req.Period)
	if err != nil {
		return RunResponse{}, err
	}

	// The company's default state backs employees without their own
	// professional tax jurisdiction.
	defaultState := ""
	if comp, err := s.companies.FindByID(ctx, companyID); err != nil {
		log.Warn("company lookup failed", zap.Error(err))
	} else if comp != nil {
		defaultState = comp.DefaultState
	}

	records := make([]EmployeeRecord, len(emps))
	for i, emp := range emps {
		forced, err := s.cycles.ForcedEligible(ctx, companyID, emp.ID.String(), period)
		if err != nil {
			// Cycle state is an eligibility refinement, not a
			// correctness gate; fall back to the wage test.
			log.Warn("contribution cycle lookup failed",
				zap.String("employee_id", emp.ID.String()),
				zap.Error(err))
			forced = false
		}
		records[i] = toEmployeeRecord(emp, forced, defaultState)
	}

	attRecords := make([]AttendanceRecord, len(attRows))
	for i, row := range attRows {
		attRecords[i] = toAttendanceRecord(row)
	}

	result, err := s.processor.ProcessBatch(ctx, records, attRecords, period)
	if err != nil {
		var batchErr *BatchError
		if errors.As(err, &batchErr) {
			return RunResponse{}, payrollerrors.WrapCalculation(err)
		}
		return RunResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	runNumber, err := s.counter.GetNextValue(ctx, companyID, counter.TypePayrollRun)
	if err != nil {
		return RunResponse{}, err
	}

	run := buildRunEntity(companyID, req.Period, runNumber, emps, result)

	if err := s.repo.WithTx(tx).CreateRun(ctx, run); err != nil {
		return RunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	// Lock this cycle for every employee who qualified; failures only
	// cost a re-check next run.
	for i, item := range result.Items {
		if item.Deductions.ESI != nil && item.Deductions.ESI.Eligible {
			if err := s.cycles.MarkEligible(ctx, companyID, records[i].ID, period); err != nil {
				log.Warn("mark contribution cycle failed",
					zap.String("employee_id", records[i].ID),
					zap.Error(err))
			}
		}
	}

	log.Info("payroll run created",
		zap.String("run_id", run.ID.String()),
		zap.String("period", req.Period),
		zap.Int("employees", run.EmployeeCount),
		zap.Int64("total_net_paise", run.TotalNetPaise),
	)

	return mapRunToResponse(*run, true), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]RunResponse, error) {
	runs, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]RunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapRunToResponse(run, false)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RunResponse, error) {
	run, err := s.findRun(ctx, companyID, id)
	if err != nil {
		return RunResponse{}, err
	}
	return mapRunToResponse(*run, true), nil
}

func (s *service) Finalize(ctx context.Context, companyID, id string) (RunResponse, error) {
	run, err := s.findRun(ctx, companyID, id)
	if err != nil {
		return RunResponse{}, err
	}
	if run.Status != StatusDraft {
		return RunResponse{}, payrollerrors.ErrFinalizeOnlyDraft
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RunResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if err := s.repo.WithTx(tx).UpdateStatus(ctx, companyID, id, StatusFinalized, &now); err != nil {
		return RunResponse{}, err
	}

	if s.outbox != nil {
		event := events.PayrollRunCompletedEvent{
			EventType:     "payroll_run_completed",
			RunID:         run.ID.String(),
			CompanyID:     companyID,
			Period:        run.Period,
			EmployeeCount: run.EmployeeCount,
			TotalNet:      run.TotalNetPaise,
			OccurredAt:    now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return RunResponse{}, err
		}
		outboxEvent := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "payroll_run",
			AggregateID:   run.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollRunCompletedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			return RunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return RunResponse{}, err
	}

	run.Status = StatusFinalized
	run.FinalizedAt = &now
	return mapRunToResponse(*run, true), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	run, err := s.findRun(ctx, companyID, id)
	if err != nil {
		return err
	}
	if run.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}

	return s.repo.Delete(ctx, companyID, id)
}

func (s *service) ExportSIF(ctx context.Context, companyID, id string) (SIFExport, error) {
	run, err := s.findRun(ctx, companyID, id)
	if err != nil {
		return SIFExport{}, err
	}
	if run.Status != StatusFinalized {
		return SIFExport{}, payrollerrors.ErrRunNotFinalized
	}

	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return SIFExport{}, err
	}
	reg, err := company.WPSRegistration(comp)
	if err != nil {
		return SIFExport{}, err
	}

	byID, err := s.employeeIndex(ctx, companyID)
	if err != nil {
		return SIFExport{}, err
	}

	period, err := parsePeriod(run.Period)
	if err != nil {
		return SIFExport{}, err
	}

	records := make([]wps.EmployeeRecord, len(run.Items))
	for i, item := range run.Items {
		emp := byID[item.EmployeeID.String()]
		records[i] = wps.EmployeeRecord{
			EmployeeID:      item.EmployeeCode,
			Name:            item.EmployeeName,
			BasicPaise:      item.BasicPaise,
			AllowancesPaise: item.GrossPaise - item.BasicPaise,
			DeductionsPaise: item.TotalDeductionsPaise,
			NetPaise:        item.NetPayPaise,
		}
		if emp != nil {
			records[i].BankShortName = emp.BankShortName
			records[i].AccountNumber = emp.BankAccount
			records[i].AgentReference = emp.AgentReference
		}
	}

	now := time.Now().UTC()
	content, err := wps.BuildSIF(wps.FileHeader{
		EmployerRegistrationID: reg.Number,
		CompanyName:            comp.Name,
		EstablishmentNumber:    reg.EstablishmentNumber,
		PaymentDate:            now,
		Period:                 wps.PeriodLabel(period.Month, period.Year),
	}, records)
	if err != nil {
		return SIFExport{}, err
	}

	return SIFExport{
		FileName: wps.SIFFileName(reg.Number, now),
		Content:  content,
	}, nil
}

func (s *service) ExportSummary(ctx context.Context, companyID, id string) (SummaryExport, error) {
	run, err := s.findRun(ctx, companyID, id)
	if err != nil {
		return SummaryExport{}, err
	}
	if run.Status != StatusFinalized {
		return SummaryExport{}, payrollerrors.ErrRunNotFinalized
	}

	byID, err := s.employeeIndex(ctx, companyID)
	if err != nil {
		return SummaryExport{}, err
	}

	rows := make([]wps.SummaryRow, len(run.Items))
	for i, item := range run.Items {
		rows[i] = wps.SummaryRow{
			Identifier:      item.EmployeeCode,
			Name:            item.EmployeeName,
			BasicPaise:      item.BasicPaise,
			AllowancesPaise: item.GrossPaise - item.BasicPaise,
			TotalPaise:      item.GrossPaise,
		}
		if emp := byID[item.EmployeeID.String()]; emp != nil {
			rows[i].NationalID = emp.NationalID
			rows[i].Nationality = emp.Nationality
			rows[i].Designation = emp.Designation
			rows[i].Department = emp.Department
			rows[i].JoinDate = emp.JoinDate
			rows[i].VisaType = emp.VisaType
		}
	}

	return SummaryExport{
		FileName: "payroll_summary_" + run.Period + ".csv",
		Content:  wps.BuildSummaryCSV(rows),
	}, nil
}

func (s *service) findRun(ctx context.Context, companyID, id string) (*PayrollRun, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, payrollerrors.ErrInvalidRunID
	}
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func (s *service) employeeIndex(ctx context.Context, companyID string) (map[string]*employee.Employee, error) {
	emps, err := s.employees.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*employee.Employee, len(emps))
	for i := range emps {
		byID[emps[i].ID.String()] = &emps[i]
	}
	return byID, nil
}

func toEmployeeRecord(emp employee.Employee, forcedEligible bool, defaultState string) EmployeeRecord {
	var special []Allowance
	if emp.SpecialPaise != 0 {
		special = []Allowance{{Name: BalancingAllowanceName, Amount: float64(emp.SpecialPaise) / 100}}
	}
	state := emp.State
	if state == "" {
		state = defaultState
	}
	return EmployeeRecord{
		ID:                emp.ID.String(),
		Name:              emp.FullName,
		Gender:            emp.Gender,
		State:             state,
		TaxRegime:         emp.TaxRegime,
		HasDisability:     emp.HasDisability,
		ESIForcedEligible: forcedEligible,
		Structure: SalaryStructure{
			Basic:               float64(emp.BasicPaise) / 100,
			HouseRent:           float64(emp.HouseRentPaise) / 100,
			Transport:           float64(emp.TransportPaise) / 100,
			Special:             special,
			PFApplicable:        emp.PFApplicable,
			ESIApplicable:       emp.ESIApplicable,
			PTaxApplicable:      emp.PTaxApplicable,
			PFExempted:          emp.PFExempted,
			InternationalWorker: emp.InternationalWorker,
		},
	}
}

func toAttendanceRecord(row attendance.PeriodAttendance) AttendanceRecord {
	return AttendanceRecord{
		EmployeeID:    row.EmployeeID.String(),
		DaysWorked:    row.DaysWorked,
		LossOfPayDays: row.LossOfPayDays,
		Overtime: OvertimeHours{
			Regular: row.OvertimeRegularHours,
			Weekend: row.OvertimeWeekendHours,
			Holiday: row.OvertimeHolidayHours,
		},
	}
}

func buildRunEntity(
	companyID string,
	period string,
	runNumber int64,
	emps []employee.Employee,
	result *PayrollRunResult,
) *PayrollRun {
	companyUUID := uuid.MustParse(companyID)

	run := &PayrollRun{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Period:    period,
		RunNumber: runNumber,
		Status:    StatusDraft,

		EmployeeCount:          len(result.Items),
		TotalGrossPaise:        statutory.MinorUnits(result.TotalGross),
		TotalDeductionsPaise:   statutory.MinorUnits(result.TotalDeductions),
		TotalNetPaise:          statutory.MinorUnits(result.TotalNet),
		TotalEmployerCostPaise: statutory.MinorUnits(result.TotalEmployerCost),
	}

	for i, item := range result.Items {
		emp := emps[i]

		entity := PayrollRunItem{
			ID:         uuid.New(),
			RunID:      run.ID,
			CompanyID:  companyUUID,
			EmployeeID: emp.ID,

			EmployeeCode: emp.Code,
			EmployeeName: item.EmployeeName,

			BasicPaise:     statutory.MinorUnits(item.Earnings.Basic),
			HouseRentPaise: statutory.MinorUnits(item.Earnings.HouseRent),
			TransportPaise: statutory.MinorUnits(item.Earnings.Transport),
			OvertimePaise:  statutory.MinorUnits(item.Earnings.Overtime),
			GrossPaise:     statutory.MinorUnits(item.Earnings.Gross),

			TotalDeductionsPaise: statutory.MinorUnits(item.Deductions.TotalEmployee),
			NetPayPaise:          statutory.MinorUnits(item.NetPay),

			AttendanceDefaulted: item.AttendanceDefaulted,
		}
		for _, allowance := range item.Earnings.Special {
			entity.SpecialPaise += statutory.MinorUnits(allowance.Amount)
		}
		if pf := item.Deductions.PF; pf != nil {
			entity.PFEmployeePaise = statutory.MinorUnits(pf.EmployeeShare)
			entity.PFEmployerPaise = statutory.MinorUnits(pf.Employer.Total)
		}
		if esi := item.Deductions.ESI; esi != nil {
			entity.ESIEmployeePaise = statutory.MinorUnits(esi.EmployeeShare)
			entity.ESIEmployerPaise = statutory.MinorUnits(esi.EmployerShare)
		}
		if pt := item.Deductions.ProfessionalTax; pt != nil {
			entity.ProfessionalTaxPaise = statutory.MinorUnits(*pt)
		}
		if tds := item.Deductions.TDS; tds != nil {
			entity.TDSPaise = statutory.MinorUnits(tds.AmountThisPeriod)
		}

		run.Items = append(run.Items, entity)
	}

	return run
}

func mapRunToResponse(run PayrollRun, withItems bool) RunResponse {
	resp := RunResponse{
		ID:        run.ID.String(),
		CompanyID: run.CompanyID.String(),
		Period:    run.Period,
		RunNumber: run.RunNumber,
		Status:    run.Status,

		EmployeeCount:     run.EmployeeCount,
		TotalGross:        run.TotalGrossPaise,
		TotalDeductions:   run.TotalDeductionsPaise,
		TotalNet:          run.TotalNetPaise,
		TotalEmployerCost: run.TotalEmployerCostPaise,
	}
	if run.FinalizedAt != nil {
		v := run.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &v
	}
	if withItems {
		resp.Items = make([]RunItemResponse, len(run.Items))
		for i, item := range run.Items {
			resp.Items[i] = RunItemResponse{
				EmployeeID:   item.EmployeeID.String(),
				EmployeeCode: item.EmployeeCode,
				EmployeeName: item.EmployeeName,

				Basic:     item.BasicPaise,
				HouseRent: item.HouseRentPaise,
				Transport: item.TransportPaise,
				Special:   item.SpecialPaise,
				Overtime:  item.OvertimePaise,
				Gross:     item.GrossPaise,

				PFEmployee:      item.PFEmployeePaise,
				ESIEmployee:     item.ESIEmployeePaise,
				ProfessionalTax: item.ProfessionalTaxPaise,
				TDS:             item.TDSPaise,
				TotalDeductions: item.TotalDeductionsPaise,

				PFEmployer:  item.PFEmployerPaise,
				ESIEmployer: item.ESIEmployerPaise,

				NetPay: item.NetPayPaise,

				AttendanceDefaulted: item.AttendanceDefaulted,
			}
		}
	}
	return resp
}

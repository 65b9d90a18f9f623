package payroll_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/attendance"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/company"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/employee"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/events"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/messaging/kafka"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/payroll"
	payrollerrors "github.com/chetanpayroll/India-Payroll-sub000/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRunRepository struct {
	runs      map[string]*payroll.PayrollRun
	created   *payroll.PayrollRun
	statusSet string
}

func newFakeRunRepository() *fakeRunRepository {
	return &fakeRunRepository{runs: make(map[string]*payroll.PayrollRun)}
}

func (f *fakeRunRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakeRunRepository) CreateRun(ctx context.Context, run *payroll.PayrollRun) error {
	f.created = run
	f.runs[run.ID.String()] = run
	return nil
}

func (f *fakeRunRepository) FindAllByCompany(ctx context.Context, companyID string) ([]payroll.PayrollRun, error) {
	out := make([]payroll.PayrollRun, 0, len(f.runs))
	for _, run := range f.runs {
		out = append(out, *run)
	}
	return out, nil
}

func (f *fakeRunRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*payroll.PayrollRun, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *run
	return &copied, nil
}

func (f *fakeRunRepository) HasRunForPeriod(ctx context.Context, companyID string, period string) (bool, error) {
	for _, run := range f.runs {
		if run.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRunRepository) UpdateStatus(ctx context.Context, companyID, id, status string, finalizedAt *time.Time) error {
	f.statusSet = status
	if run, ok := f.runs[id]; ok {
		run.Status = status
		run.FinalizedAt = finalizedAt
	}
	return nil
}

func (f *fakeRunRepository) Delete(ctx context.Context, companyID string, id string) error {
	delete(f.runs, id)
	return nil
}

type fakeEmployeeRepository struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepository) FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID string, id string) error {
	return nil
}

type fakeAttendanceRepository struct {
	rows []attendance.PeriodAttendance
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) Upsert(ctx context.Context, a *attendance.PeriodAttendance) error {
	return nil
}

func (f *fakeAttendanceRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, period string) (*attendance.PeriodAttendance, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeAttendanceRepository) FindAllByCompanyAndPeriod(ctx context.Context, companyID, period string) ([]attendance.PeriodAttendance, error) {
	return f.rows, nil
}

type fakeCompanyRepository struct {
	company *company.Company
}

func (f *fakeCompanyRepository) WithTx(tx *sql.Tx) company.Repository { return f }

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error { return nil }

func (f *fakeCompanyRepository) FindByID(ctx context.Context, id string) (*company.Company, error) {
	return f.company, nil
}

func (f *fakeCompanyRepository) Update(ctx context.Context, c *company.Company) error { return nil }

func (f *fakeCompanyRepository) UpsertRegistration(ctx context.Context, reg *company.CompanyRegistration) error {
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectBegin()
	mock.ExpectCommit()
	return db
}

type fixture struct {
	companyID uuid.UUID
	employees []employee.Employee
	rows      []attendance.PeriodAttendance
}

// Two active employees: one inside the state insurance wage limit, one
// well above it.
func newFixture() fixture {
	companyID := uuid.New()
	low := employee.Employee{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Code:           "EMP-00001",
		FullName:       "Priya Sharma",
		Gender:         "female",
		State:          "KA",
		BasicPaise:     1000000, // 10,000.00
		HouseRentPaise: 400000,
		TransportPaise: 160000,
		PFApplicable:   true,
		ESIApplicable:  true,
		PTaxApplicable: true,
		BankShortName:  "HDFC",
		BankAccount:    "50123456789012",
		IsActive:       true,
	}
	high := employee.Employee{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Code:           "EMP-00002",
		FullName:       "Arjun Mehta",
		Gender:         "male",
		State:          "KA",
		TaxRegime:      "new",
		BasicPaise:     8000000, // 80,000.00
		HouseRentPaise: 3200000,
		TransportPaise: 160000,
		SpecialPaise:   2000000,
		PFApplicable:   true,
		ESIApplicable:  true,
		PTaxApplicable: true,
		IsActive:       true,
	}

	rows := []attendance.PeriodAttendance{
		{EmployeeID: low.ID, CompanyID: companyID, Period: "2025-07", DaysWorked: 31},
		{EmployeeID: high.ID, CompanyID: companyID, Period: "2025-07", DaysWorked: 31},
	}

	return fixture{
		companyID: companyID,
		employees: []employee.Employee{low, high},
		rows:      rows,
	}
}

func newTestService(t *testing.T, fix fixture, runs *fakeRunRepository, outbox kafka.OutboxRepository, cycles payroll.CycleStore) payroll.Service {
	t.Helper()
	return payroll.NewService(payroll.ServiceDeps{
		DB:          newTxDB(t),
		Repo:        runs,
		Employees:   &fakeEmployeeRepository{active: fix.employees},
		Attendances: &fakeAttendanceRepository{rows: fix.rows},
		Companies:   &fakeCompanyRepository{},
		Counter:     &fakeCounterRepository{},
		Outbox:      outbox,
		CycleStore:  cycles,
	})
}

func TestRunPayroll_CreatesDraftRun(t *testing.T) {
	fix := newFixture()
	runs := newFakeRunRepository()
	cycles := payroll.NewMemoryCycleStore()
	svc := newTestService(t, fix, runs, nil, cycles)

	resp, err := svc.RunPayroll(context.Background(), fix.companyID.String(), payroll.RunPayrollRequest{Period: "2025-07"})
	assert.NoError(t, err)

	assert.Equal(t, payroll.StatusDraft, resp.Status)
	assert.Equal(t, int64(1), resp.RunNumber)
	assert.Equal(t, 2, resp.EmployeeCount)
	assert.Len(t, resp.Items, 2)

	created := runs.created
	assert.NotNil(t, created)
	assert.Equal(t, "2025-07", created.Period)
	assert.Equal(t, 2, len(created.Items))

	// Totals are the sum of the item columns, in paise.
	var net int64
	for _, item := range created.Items {
		assert.Equal(t, item.GrossPaise-item.TotalDeductionsPaise, item.NetPayPaise)
		net += item.NetPayPaise
	}
	assert.Equal(t, net, created.TotalNetPaise)
	assert.Positive(t, created.TotalGrossPaise)
}

func TestRunPayroll_LocksContributionCycleForEligibleEmployee(t *testing.T) {
	fix := newFixture()
	cycles := payroll.NewMemoryCycleStore()
	svc := newTestService(t, fix, newFakeRunRepository(), nil, cycles)

	_, err := svc.RunPayroll(context.Background(), fix.companyID.String(), payroll.RunPayrollRequest{Period: "2025-07"})
	assert.NoError(t, err)

	period := payroll.PeriodContext{Month: time.July, Year: 2025}

	lowPaid := fix.employees[0].ID.String()
	forced, err := cycles.ForcedEligible(context.Background(), fix.companyID.String(), lowPaid, period)
	assert.NoError(t, err)
	assert.True(t, forced, "employee under the wage limit should be locked into the cycle")

	highPaid := fix.employees[1].ID.String()
	forced, err = cycles.ForcedEligible(context.Background(), fix.companyID.String(), highPaid, period)
	assert.NoError(t, err)
	assert.False(t, forced)
}

func TestRunPayroll_RejectsDuplicatePeriod(t *testing.T) {
	fix := newFixture()
	runs := newFakeRunRepository()
	existing := &payroll.PayrollRun{ID: uuid.New(), CompanyID: fix.companyID, Period: "2025-07", Status: payroll.StatusDraft}
	runs.runs[existing.ID.String()] = existing

	svc := newTestService(t, fix, runs, nil, nil)

	_, err := svc.RunPayroll(context.Background(), fix.companyID.String(), payroll.RunPayrollRequest{Period: "2025-07"})
	assert.ErrorIs(t, err, payrollerrors.ErrRunAlreadyExists)
}

func TestRunPayroll_RejectsBadPeriodFormat(t *testing.T) {
	fix := newFixture()
	svc := newTestService(t, fix, newFakeRunRepository(), nil, nil)

	_, err := svc.RunPayroll(context.Background(), fix.companyID.String(), payroll.RunPayrollRequest{Period: "July 2025"})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriodFormat)
}

func TestRunPayroll_NoActiveEmployees(t *testing.T) {
	fix := newFixture()
	fix.employees = nil
	svc := newTestService(t, fix, newFakeRunRepository(), nil, nil)

	_, err := svc.RunPayroll(context.Background(), fix.companyID.String(), payroll.RunPayrollRequest{Period: "2025-07"})
	assert.ErrorIs(t, err, payrollerrors.ErrNoEmployees)
}

func TestRunPayroll_CalculationFailureAbortsRun(t *testing.T) {
	fix := newFixture()
	fix.employees[0].BasicPaise = -1000000
	runs := newFakeRunRepository()
	svc := newTestService(t, fix, runs, nil, nil)

	_, err := svc.RunPayroll(context.Background(), fix.companyID.String(), payroll.RunPayrollRequest{Period: "2025-07"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "payroll calculation aborted")
	assert.Nil(t, runs.created, "a failed batch must not persist a partial run")
}

func TestFinalize_TransitionsDraftAndWritesOutboxEvent(t *testing.T) {
	fix := newFixture()
	runs := newFakeRunRepository()
	outbox := &fakeOutboxRepository{}
	run := &payroll.PayrollRun{
		ID:            uuid.New(),
		CompanyID:     fix.companyID,
		Period:        "2025-07",
		Status:        payroll.StatusDraft,
		EmployeeCount: 2,
		TotalNetPaise: 12345600,
	}
	runs.runs[run.ID.String()] = run

	svc := newTestService(t, fix, runs, outbox, nil)

	resp, err := svc.Finalize(context.Background(), fix.companyID.String(), run.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusFinalized, resp.Status)
	assert.NotNil(t, resp.FinalizedAt)

	assert.Len(t, outbox.created, 1)
	event := outbox.created[0]
	assert.Equal(t, events.PayrollRunCompletedTopic, event.Topic)
	assert.Equal(t, "payroll_run_completed", event.EventType)
	assert.Equal(t, run.ID.String(), event.AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
}

func TestFinalize_RejectsNonDraftRun(t *testing.T) {
	fix := newFixture()
	runs := newFakeRunRepository()
	run := &payroll.PayrollRun{ID: uuid.New(), CompanyID: fix.companyID, Period: "2025-07", Status: payroll.StatusFinalized}
	runs.runs[run.ID.String()] = run

	svc := newTestService(t, fix, runs, &fakeOutboxRepository{}, nil)

	_, err := svc.Finalize(context.Background(), fix.companyID.String(), run.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrFinalizeOnlyDraft)
}

func TestDelete_OnlyDraftRuns(t *testing.T) {
	fix := newFixture()
	runs := newFakeRunRepository()
	run := &payroll.PayrollRun{ID: uuid.New(), CompanyID: fix.companyID, Period: "2025-07", Status: payroll.StatusFinalized}
	runs.runs[run.ID.String()] = run

	svc := newTestService(t, fix, runs, nil, nil)

	err := svc.Delete(context.Background(), fix.companyID.String(), run.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrDeleteOnlyDraft)
	assert.Contains(t, runs.runs, run.ID.String())
}

func TestExportSIF_RequiresFinalizedRun(t *testing.T) {
	fix := newFixture()
	runs := newFakeRunRepository()
	run := &payroll.PayrollRun{ID: uuid.New(), CompanyID: fix.companyID, Period: "2025-07", Status: payroll.StatusDraft}
	runs.runs[run.ID.String()] = run

	svc := newTestService(t, fix, runs, nil, nil)

	_, err := svc.ExportSIF(context.Background(), fix.companyID.String(), run.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrRunNotFinalized)
}

func TestExportSIF_RendersSalaryFile(t *testing.T) {
	fix := newFixture()
	runs := newFakeRunRepository()
	emp := fix.employees[0]
	run := &payroll.PayrollRun{
		ID:        uuid.New(),
		CompanyID: fix.companyID,
		Period:    "2025-07",
		Status:    payroll.StatusFinalized,
		Items: []payroll.PayrollRunItem{
			{
				ID:                   uuid.New(),
				EmployeeID:           emp.ID,
				EmployeeCode:         emp.Code,
				EmployeeName:         emp.FullName,
				BasicPaise:           1000000,
				GrossPaise:           1560000,
				TotalDeductionsPaise: 195000,
				NetPayPaise:          1365000,
			},
		},
	}
	runs.runs[run.ID.String()] = run

	reg := company.CompanyRegistration{
		CompanyID:           fix.companyID,
		Type:                company.RegistrationWPS,
		Number:              "MOL12345678901",
		EstablishmentNumber: "EST001",
	}
	svc := payroll.NewService(payroll.ServiceDeps{
		DB:          newTxDB(t),
		Repo:        runs,
		Employees:   &fakeEmployeeRepository{active: fix.employees},
		Attendances: &fakeAttendanceRepository{},
		Companies: &fakeCompanyRepository{company: &company.Company{
			ID:            fix.companyID,
			Name:          "Acme Industries",
			Registrations: []company.CompanyRegistration{reg},
		}},
		Counter: &fakeCounterRepository{},
	})

	export, err := svc.ExportSIF(context.Background(), fix.companyID.String(), run.ID.String())
	assert.NoError(t, err)

	assert.True(t, len(export.FileName) > 4 && export.FileName[len(export.FileName)-4:] == ".SIF")
	assert.Contains(t, export.FileName, reg.Number)

	assert.Contains(t, export.Content, "SCR|")
	assert.Contains(t, export.Content, "EDR|00000001|")
	assert.Contains(t, export.Content, "072025")
	// Bank details come from the employee master, not the run snapshot.
	assert.Contains(t, export.Content, emp.BankAccount)
}

func TestExportSummary_IncludesMasterDataColumns(t *testing.T) {
	fix := newFixture()
	fix.employees[0].NationalID = "ABCDE1234F"
	fix.employees[0].Designation = "Engineer"
	runs := newFakeRunRepository()
	emp := fix.employees[0]
	run := &payroll.PayrollRun{
		ID:        uuid.New(),
		CompanyID: fix.companyID,
		Period:    "2025-07",
		Status:    payroll.StatusFinalized,
		Items: []payroll.PayrollRunItem{
			{
				ID:           uuid.New(),
				EmployeeID:   emp.ID,
				EmployeeCode: emp.Code,
				EmployeeName: emp.FullName,
				BasicPaise:   1000000,
				GrossPaise:   1560000,
			},
		},
	}
	runs.runs[run.ID.String()] = run

	svc := newTestService(t, fix, runs, nil, nil)

	export, err := svc.ExportSummary(context.Background(), fix.companyID.String(), run.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "payroll_summary_2025-07.csv", export.FileName)
	assert.Contains(t, export.Content, `"ABCDE1234F"`)
	assert.Contains(t, export.Content, `"Engineer"`)
	assert.Contains(t, export.Content, `"15600.00"`)
}

package employee_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/employee"
	employeeerrors "github.com/chetanpayroll/India-Payroll-sub000/internal/employee/errors"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/events"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeRepository struct {
	withTxFn              func(tx *sql.Tx) employee.Repository
	createFn              func(ctx context.Context, emp *employee.Employee) error
	findAllByCompanyFn    func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findActiveByCompanyFn func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findByIDAndCompanyFn  func(ctx context.Context, companyID string, id string) (*employee.Employee, error)
	updateFn              func(ctx context.Context, emp *employee.Employee) error
	deleteFn              func(ctx context.Context, companyID string, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findActiveByCompanyFn != nil {
		return f.findActiveByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return &employee.Employee{}, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, companyID string, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
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

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FullName:  "Priya Sharma",
		Email:     "priya@example.com",
		Gender:    "female",
		State:     "MH",
		TaxRegime: "new",
		JoinDate:  "2022-04-01",
		Structure: employee.SalaryStructureRequest{
			Basic:     1200000,
			HouseRent: 600000,
			Transport: 160000,
		},
	}
}

func TestEmployeeCreate_AssignsSequentialCode(t *testing.T) {
	db := newTxDB(t)
	repo := &fakeEmployeeRepository{}
	svc := employee.NewService(db, repo, &fakeCounterRepository{}, nil)

	resp, err := svc.Create(context.Background(), uuid.New().String(), validCreateRequest())
	assert.NoError(t, err)
	assert.Equal(t, "EMP-00001", resp.Code)
	assert.True(t, resp.PFApplicable)
	assert.True(t, resp.IsActive)
}

func TestEmployeeCreate_WritesOutboxEventInSameTx(t *testing.T) {
	db := newTxDB(t)
	outbox := &fakeOutboxRepository{}
	svc := employee.NewServiceWithOutbox(db, &fakeEmployeeRepository{}, &fakeCounterRepository{}, outbox, nil)

	_, err := svc.Create(context.Background(), uuid.New().String(), validCreateRequest())
	assert.NoError(t, err)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, events.EmployeeCreatedTopic, outbox.created[0].Topic)
	assert.Equal(t, "employee_created", outbox.created[0].EventType)
	assert.Equal(t, kafka.OutboxStatusPending, outbox.created[0].Status)
}

func TestEmployeeCreate_RejectsInvalidCompanyID(t *testing.T) {
	svc := employee.NewService(nil, &fakeEmployeeRepository{}, &fakeCounterRepository{}, nil)

	_, err := svc.Create(context.Background(), "not-a-uuid", validCreateRequest())
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidCompanyID)
}

func TestEmployeeCreate_RejectsBadJoinDate(t *testing.T) {
	svc := employee.NewService(nil, &fakeEmployeeRepository{}, &fakeCounterRepository{}, nil)

	req := validCreateRequest()
	req.JoinDate = "01-04-2022"
	_, err := svc.Create(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidJoinDate)
}

func TestEmployeeCreate_RejectsNegativeComponents(t *testing.T) {
	svc := employee.NewService(nil, &fakeEmployeeRepository{}, &fakeCounterRepository{}, nil)

	req := validCreateRequest()
	req.Structure.HouseRent = -1
	_, err := svc.Create(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, employeeerrors.ErrNegativeSalaryComponent)
}

func TestEmployeeGetByID_RejectsMalformedID(t *testing.T) {
	svc := employee.NewService(nil, &fakeEmployeeRepository{}, &fakeCounterRepository{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String(), "42")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}

func TestEmployeeGetOptions_UsesActiveRosterOnly(t *testing.T) {
	repo := &fakeEmployeeRepository{
		findActiveByCompanyFn: func(ctx context.Context, companyID string) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: uuid.New(), Code: "EMP-00001", FullName: "A"},
				{ID: uuid.New(), Code: "EMP-00002", FullName: "B"},
			}, nil
		},
	}
	svc := employee.NewService(nil, repo, &fakeCounterRepository{}, nil)

	opts, err := svc.GetOptions(context.Background(), uuid.New().String())
	assert.NoError(t, err)
	assert.Len(t, opts, 2)
	assert.Equal(t, "EMP-00001", opts[0].Code)
}

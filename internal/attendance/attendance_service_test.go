package attendance_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/attendance"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceRepository struct {
	upserted []*attendance.PeriodAttendance
	rows     []attendance.PeriodAttendance
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) Upsert(ctx context.Context, a *attendance.PeriodAttendance) error {
	f.upserted = append(f.upserted, a)
	return nil
}

func (f *fakeAttendanceRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, period string) (*attendance.PeriodAttendance, error) {
	return &attendance.PeriodAttendance{}, nil
}

func (f *fakeAttendanceRepository) FindAllByCompanyAndPeriod(ctx context.Context, companyID, period string) ([]attendance.PeriodAttendance, error) {
	return f.rows, nil
}

func TestAttendanceRecord_UpsertsSummary(t *testing.T) {
	repo := &fakeAttendanceRepository{}
	svc := attendance.NewService(nil, repo)

	resp, err := svc.Record(context.Background(), uuid.New().String(), attendance.RecordAttendanceRequest{
		EmployeeID:           uuid.New().String(),
		Period:               "2024-06",
		DaysWorked:           28,
		LossOfPayDays:        2,
		OvertimeRegularHours: 6,
	})
	assert.NoError(t, err)
	assert.Len(t, repo.upserted, 1)
	assert.Equal(t, "2024-06", resp.Period)
	assert.Equal(t, 28, resp.DaysWorked)
}

func TestAttendanceRecord_RejectsBadPeriod(t *testing.T) {
	svc := attendance.NewService(nil, &fakeAttendanceRepository{})

	_, err := svc.Record(context.Background(), uuid.New().String(), attendance.RecordAttendanceRequest{
		EmployeeID: uuid.New().String(),
		Period:     "June 2024",
	})
	assert.Error(t, err)
}

func TestAttendanceRecord_RejectsDaysBeyondMonth(t *testing.T) {
	svc := attendance.NewService(nil, &fakeAttendanceRepository{})

	// February 2023 has 28 days.
	_, err := svc.Record(context.Background(), uuid.New().String(), attendance.RecordAttendanceRequest{
		EmployeeID:    uuid.New().String(),
		Period:        "2023-02",
		DaysWorked:    27,
		LossOfPayDays: 2,
	})
	assert.Error(t, err)
}

func TestAttendanceGetByPeriod_MapsRows(t *testing.T) {
	repo := &fakeAttendanceRepository{
		rows: []attendance.PeriodAttendance{
			{ID: uuid.New(), CompanyID: uuid.New(), EmployeeID: uuid.New(), Period: "2024-06", DaysWorked: 30},
		},
	}
	svc := attendance.NewService(nil, repo)

	rows, err := svc.GetByPeriod(context.Background(), uuid.New().String(), "2024-06")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 30, rows[0].DaysWorked)
}

package attendance

import (
	"context"
	"database/sql"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, a *PeriodAttendance) error
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, period string) (*PeriodAttendance, error)
	FindAllByCompanyAndPeriod(ctx context.Context, companyID, period string) ([]PeriodAttendance, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Upsert(ctx context.Context, a *PeriodAttendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"}, {Name: "employee_id"}, {Name: "period"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"days_worked", "loss_of_pay_days",
				"overtime_regular_hours", "overtime_weekend_hours", "overtime_holiday_hours",
				"updated_at",
			}),
		}).
		Create(a).Error
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID, period string) (*PeriodAttendance, error) {
	var a PeriodAttendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("period = ?", period).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByCompanyAndPeriod(ctx context.Context, companyID, period string) ([]PeriodAttendance, error) {
	var rows []PeriodAttendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period = ?", period).
		Find(&rows).Error
	return rows, err
}

package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateRun(ctx context.Context, run *PayrollRun) error
	FindAllByCompany(ctx context.Context, companyID string) ([]PayrollRun, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRun, error)
	HasRunForPeriod(ctx context.Context, companyID string, period string) (bool, error)
	UpdateStatus(ctx context.Context, companyID, id, status string, finalizedAt *time.Time) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db  *gorm.DB
	sdb *sql.DB
	tx  *sql.Tx
}

func NewRepository(db *gorm.DB, sdb *sql.DB) Repository {
	return &repository{db: db, sdb: sdb}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sdb: r.sdb, tx: tx}
}

// CreateRun inserts the run header and every item through the active
// transaction so the run commits atomically with its outbox event.
func (r *repository) CreateRun(ctx context.Context, run *PayrollRun) error {
	exec := r.execer()

	const runQuery = `
        INSERT INTO payroll_runs (
            id, company_id, period, run_number, status,
            employee_count, total_gross_paise, total_deductions_paise,
            total_net_paise, total_employer_cost_paise, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
	if _, err := exec.ExecContext(ctx, runQuery,
		run.ID, run.CompanyID, run.Period, run.RunNumber, run.Status,
		run.EmployeeCount, run.TotalGrossPaise, run.TotalDeductionsPaise,
		run.TotalNetPaise, run.TotalEmployerCostPaise,
	); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO payroll_run_items (
            id, run_id, company_id, employee_id, employee_code, employee_name,
            basic_paise, house_rent_paise, transport_paise, special_paise,
            overtime_paise, gross_paise,
            pf_employee_paise, esi_employee_paise, professional_tax_paise,
            tds_paise, total_deductions_paise,
            pf_employer_paise, esi_employer_paise,
            net_pay_paise, attendance_defaulted, created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
            $13, $14, $15, $16, $17, $18, $19, $20, $21, NOW()
        )
    `
	for _, item := range run.Items {
		if _, err := exec.ExecContext(ctx, itemQuery,
			item.ID, run.ID, item.CompanyID, item.EmployeeID,
			item.EmployeeCode, item.EmployeeName,
			item.BasicPaise, item.HouseRentPaise, item.TransportPaise, item.SpecialPaise,
			item.OvertimePaise, item.GrossPaise,
			item.PFEmployeePaise, item.ESIEmployeePaise, item.ProfessionalTaxPaise,
			item.TDSPaise, item.TotalDeductionsPaise,
			item.PFEmployerPaise, item.ESIEmployerPaise,
			item.NetPayPaise, item.AttendanceDefaulted,
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]PayrollRun, error) {
	var runs []PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("period DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("employee_code ASC")
		}).
		First(&run, "id = ?", id).Error
	return &run, err
}

func (r *repository) HasRunForPeriod(ctx context.Context, companyID string, period string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Scopes(tenant.Scope(companyID)).
		Where("period = ?", period).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateStatus(ctx context.Context, companyID, id, status string, finalizedAt *time.Time) error {
	const query = `
        UPDATE payroll_runs
        SET status = $3, finalized_at = $4, updated_at = NOW()
        WHERE id = $1 AND company_id = $2
    `
	_, err := r.execer().ExecContext(ctx, query, id, companyID, status, finalizedAt)
	return err
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		if err := db.
			Where("company_id = ?", companyID).
			Delete(&PayrollRunItem{}, "run_id = ?", id).Error; err != nil {
			return err
		}
		return db.
			Scopes(tenant.Scope(companyID)).
			Delete(&PayrollRun{}, "id = ?", id).Error
	})
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sdb
}

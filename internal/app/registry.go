package app

import (
	"database/sql"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/attendance"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/calculation"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/company"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/employee"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/messaging/kafka"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/payroll"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB, db)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	companyService := company.NewService(db, companyRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)

	var cycleStore payroll.CycleStore
	if rdb != nil {
		cycleStore = payroll.NewRedisCycleStore(rdb)
	} else {
		cycleStore = payroll.NewMemoryCycleStore()
	}
	payrollService := payroll.NewService(payroll.ServiceDeps{
		DB:          db,
		Repo:        payrollRepo,
		Employees:   employeeRepo,
		Attendances: attendanceRepo,
		Companies:   companyRepo,
		Counter:     counterRepo,
		Outbox:      outboxRepo,
		CycleStore:  cycleStore,
		Logger:      logger,
	})

	calculationService := calculation.NewService(payroll.DefaultRateSet(), logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	calculationHandler := calculation.NewHandler(calculationService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler)
		calculation.RegisterRoutes(api, calculationHandler, logger)
		company.RegisterRoutes(api, companyHandler)
		employee.RegisterRoutes(api, employeeHandler, logger)
		payroll.RegisterRoutes(api, payrollHandler, rdb, logger)
	}

	return nil
}

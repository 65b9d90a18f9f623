package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/attendance"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/company"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/employee"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/events"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/messaging/kafka/consumer"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/payroll"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/connection"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/counter"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer renders salary files for finalized payroll runs as the
// completion events arrive.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	exportDir := os.Getenv("SIF_EXPORT_DIR")
	if exportDir == "" {
		exportDir = "exports"
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return err
	}

	payrollService := payroll.NewService(payroll.ServiceDeps{
		DB:          sqlDB,
		Repo:        payroll.NewRepository(gormDB, sqlDB),
		Employees:   employee.NewRepository(gormDB),
		Attendances: attendance.NewRepository(gormDB),
		Companies:   company.NewRepository(gormDB),
		Counter:     counter.NewRepository(gormDB),
		Logger:      logger,
	})

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayrollRunCompletedTopic,
		GroupID:        "payroll-sif-export",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeRunCompleted(ctx, reader, payrollService, exportDir, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

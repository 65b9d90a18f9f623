package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	companyerrors "github.com/chetanpayroll/India-Payroll-sub000/internal/company/errors"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/events"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRunCompleted renders the wage-protection salary file for every
// finalized payroll run and drops it into exportDir for the bank upload
// job to pick up.
func ConsumeRunCompleted(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	exportDir string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.run_completed")
	log.Info("payroll run completed consumer started", zap.String("export_dir", exportDir))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll run completed consumer stopped")
				return
			}
			log.Error("fetch run completed message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode run completed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		export, err := payrollService.ExportSIF(ctx, event.CompanyID, event.RunID)
		if err != nil {
			// A tenant without a wage-protection registration simply has no
			// salary file to produce; retrying will never change that.
			if errors.Is(err, companyerrors.ErrMissingWPSRegistration) {
				log.Warn("no wage protection registration, skipping salary file",
					zap.String("run_id", event.RunID),
					zap.String("company_id", event.CompanyID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("render salary file failed",
				zap.String("run_id", event.RunID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		path := filepath.Join(exportDir, export.FileName)
		if err := os.WriteFile(path, []byte(export.Content), 0o644); err != nil {
			log.Error("write salary file failed",
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit run completed message failed", zap.Error(err))
			continue
		}

		log.Info("salary file exported",
			zap.String("run_id", event.RunID),
			zap.String("company_id", event.CompanyID),
			zap.String("file", export.FileName),
		)
	}
}

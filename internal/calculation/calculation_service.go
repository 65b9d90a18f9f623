package calculation

import (
	"context"
	"net/http"
	"time"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/payroll"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/shared/apperror"
	"github.com/chetanpayroll/India-Payroll-sub000/internal/statutory"

	"go.uber.org/zap"
)

var (
	errInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	errInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	errUnknownRegime = apperror.New(
		apperror.CodeInvalidInput,
		"unknown tax regime",
		http.StatusBadRequest,
	)
)

// Service exposes the statutory calculators as standalone what-if
// operations. Nothing here touches storage; the rate set is fixed at
// construction like the batch processor's.
type Service interface {
	Gratuity(ctx context.Context, req GratuityRequest) (GratuityResponse, error)
	Structure(ctx context.Context, req StructureRequest) (payroll.StructureResult, error)
	Withholding(ctx context.Context, req WithholdingRequest) (WithholdingResponse, error)
}

type service struct {
	rates  payroll.RateSet
	logger *zap.Logger
}

func NewService(rates payroll.RateSet, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{rates: rates, logger: logger.Named("calculation.service")}
}

func (s *service) Gratuity(ctx context.Context, req GratuityRequest) (GratuityResponse, error) {
	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return GratuityResponse{}, errInvalidDate
	}
	leaveDate, err := time.Parse("2006-01-02", req.LeaveDate)
	if err != nil {
		return GratuityResponse{}, errInvalidDate
	}

	res, err := statutory.CalculateGratuity(req.MonthlyBasicWage, joinDate, leaveDate, s.rates.Gratuity)
	if err != nil {
		return GratuityResponse{}, apperror.Wrap(err, apperror.CodeInvalidInput, err.Error(), http.StatusBadRequest)
	}

	return GratuityResponse{GratuityResult: res}, nil
}

func (s *service) Structure(ctx context.Context, req StructureRequest) (payroll.StructureResult, error) {
	opts := payroll.SynthesizeOptions{
		BasicPercent:       req.BasicPercent,
		HRAPercent:         req.HRAPercent,
		TransportAllowance: req.TransportAllowance,
		PFApplicable:       boolOrDefault(req.PFApplicable, true),
		ESIApplicable:      boolOrDefault(req.ESIApplicable, true),
		PTaxApplicable:     boolOrDefault(req.PTaxApplicable, true),
	}

	res, err := payroll.Synthesize(req.AnnualTotalCost, opts, s.rates)
	if err != nil {
		return payroll.StructureResult{}, apperror.Wrap(err, apperror.CodeInvalidInput, err.Error(), http.StatusBadRequest)
	}
	return res, nil
}

func (s *service) Withholding(ctx context.Context, req WithholdingRequest) (WithholdingResponse, error) {
	t, err := time.Parse("2006-01", req.Period)
	if err != nil {
		return WithholdingResponse{}, errInvalidPeriod
	}
	period := payroll.PeriodContext{Month: t.Month(), Year: t.Year()}

	regime, ok := s.rates.Regimes[req.TaxRegime]
	if !ok {
		return WithholdingResponse{}, errUnknownRegime
	}

	remaining := period.RemainingFiscalPeriods()
	res, err := statutory.CalculateWithholding(statutory.TDSInput{
		PeriodTaxableIncome: req.PeriodTaxableIncome,
		AlreadyWithheld:     req.AlreadyWithheld,
		RemainingPeriods:    remaining,
	}, regime)
	if err != nil {
		return WithholdingResponse{}, apperror.Wrap(err, apperror.CodeInvalidInput, err.Error(), http.StatusBadRequest)
	}

	return WithholdingResponse{TDSResult: res, RemainingPeriods: remaining}, nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

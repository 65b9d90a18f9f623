package payroll

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chetanpayroll/India-Payroll-sub000/internal/statutory"
)

// RateSet bundles the statutory tables a processor works against. The set is
// copied at construction: rate revisions never affect in-flight calculations.
type RateSet struct {
	PF       statutory.PFRates
	ESI      statutory.ESIRates
	PTax     statutory.PTaxTables
	Regimes  map[string]statutory.TaxRegime
	Gratuity statutory.GratuityRates
}

func DefaultRateSet() RateSet {
	return RateSet{
		PF:       statutory.DefaultPFRates(),
		ESI:      statutory.DefaultESIRates(),
		PTax:     statutory.DefaultPTaxTables(),
		Regimes:  statutory.DefaultTaxRegimes(),
		Gratuity: statutory.DefaultGratuityRates(),
	}
}

// BatchError identifies which employee and which calculator aborted a run.
type BatchError struct {
	EmployeeID string
	Stage      string
	Err        error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("employee %s: %s: %v", e.EmployeeID, e.Stage, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Processor runs the proration engine and statutory calculators over a batch
// of employees. It holds no mutable state and is safe for concurrent use.
type Processor struct {
	rates   RateSet
	log     *zap.Logger
	workers int
}

func NewProcessor(rates RateSet, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{
		rates:   rates,
		log:     log,
		workers: runtime.GOMAXPROCS(0),
	}
}

// ProcessBatch calculates one payroll period for every employee given.
//
// Employees carry no data dependency on each other, so items are computed in
// parallel; aggregate totals are summed afterwards in slice order so parallel
// and sequential execution produce identical results. A failure on any single
// employee aborts the whole batch: a partially-correct payroll run is a worse
// outcome than a blocked one.
func (p *Processor) ProcessBatch(ctx context.Context, employees []EmployeeRecord, attendance []AttendanceRecord, period PeriodContext) (*PayrollRunResult, error) {
	byEmployee := make(map[string]AttendanceRecord, len(attendance))
	for _, att := range attendance {
		byEmployee[att.EmployeeID] = att
	}

	items := make([]PayrollItem, len(employees))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			att, ok := byEmployee[emp.ID]
			if !ok {
				att = FullAttendance(emp.ID, period)
				p.log.Warn("attendance missing, assuming full attendance",
					zap.String("employee_id", emp.ID),
					zap.String("period", period.String()))
			}

			item, err := p.calculateItem(emp, att, period, !ok)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &PayrollRunResult{Period: period, Items: items}
	for _, item := range items {
		result.TotalGross += item.Earnings.Gross
		result.TotalDeductions += item.Deductions.TotalEmployee
		result.TotalNet += item.NetPay
		result.TotalEmployerCost += item.Deductions.TotalEmployer
	}
	return result, nil
}

func (p *Processor) calculateItem(emp EmployeeRecord, att AttendanceRecord, period PeriodContext, defaulted bool) (PayrollItem, error) {
	earnings, err := Prorate(emp.Structure, att, period)
	if err != nil {
		return PayrollItem{}, &BatchError{EmployeeID: emp.ID, Stage: "proration", Err: err}
	}

	var ded DeductionBreakdown

	if emp.Structure.PFApplicable {
		pf, err := statutory.CalculatePF(statutory.PFInput{
			BasicWage:           earnings.Basic,
			InternationalWorker: emp.Structure.InternationalWorker,
			Exempted:            emp.Structure.PFExempted,
		}, p.rates.PF)
		if err != nil {
			return PayrollItem{}, &BatchError{EmployeeID: emp.ID, Stage: "provident fund", Err: err}
		}
		ded.PF = &pf
	}

	if emp.Structure.ESIApplicable {
		esi, err := statutory.CalculateESI(statutory.ESIInput{
			GrossWage:         earnings.Gross,
			DaysWorked:        att.DaysWorked,
			HasDisability:     emp.HasDisability,
			ForcedEligibility: emp.ESIForcedEligible,
		}, p.rates.ESI)
		if err != nil {
			return PayrollItem{}, &BatchError{EmployeeID: emp.ID, Stage: "state insurance", Err: err}
		}
		ded.ESI = &esi
	}

	if emp.Structure.PTaxApplicable {
		pt, err := statutory.CalculateProfessionalTax(p.rates.PTax, emp.State, earnings.Gross, emp.Gender, period.Month)
		if err != nil {
			return PayrollItem{}, &BatchError{EmployeeID: emp.ID, Stage: "professional tax", Err: err}
		}
		ded.ProfessionalTax = &pt
	}

	if emp.TaxRegime != "" {
		regime, ok := p.rates.Regimes[emp.TaxRegime]
		if !ok {
			return PayrollItem{}, &BatchError{EmployeeID: emp.ID, Stage: "income tax withholding",
				Err: fmt.Errorf("unknown tax regime %q", emp.TaxRegime)}
		}
		tds, err := statutory.CalculateWithholding(statutory.TDSInput{
			PeriodTaxableIncome: earnings.Gross,
			AlreadyWithheld:     emp.TaxWithheldYTD,
			RemainingPeriods:    period.RemainingFiscalPeriods(),
		}, regime)
		if err != nil {
			return PayrollItem{}, &BatchError{EmployeeID: emp.ID, Stage: "income tax withholding", Err: err}
		}
		ded.TDS = &tds
	}

	if ded.PF != nil {
		ded.TotalEmployee += ded.PF.EmployeeShare
		ded.TotalEmployer += ded.PF.Employer.Total
	}
	if ded.ESI != nil {
		ded.TotalEmployee += ded.ESI.EmployeeShare
		ded.TotalEmployer += ded.ESI.EmployerShare
	}
	if ded.ProfessionalTax != nil {
		ded.TotalEmployee += *ded.ProfessionalTax
	}
	if ded.TDS != nil {
		ded.TotalEmployee += ded.TDS.AmountThisPeriod
	}

	return PayrollItem{
		EmployeeID:          emp.ID,
		EmployeeName:        emp.Name,
		Earnings:            earnings,
		Deductions:          ded,
		NetPay:              earnings.Gross - ded.TotalEmployee,
		AttendanceDefaulted: defaulted,
	}, nil
}

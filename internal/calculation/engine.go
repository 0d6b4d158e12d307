package calculation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CalculationEngine wires every payroll component for one rate snapshot.
// It holds no mutable state once built and is safe for concurrent use.
type CalculationEngine struct {
	Rates      domain.RateConfig
	Schedule   *ExemptionSchedule
	Deductions *DeductionEngine
	Simulator  *AnnualPayrollSimulator
	Options    SolverOptions
	Workers    int // parallel employees in RunBatch; <= 0 means GOMAXPROCS
	Logger     Logger
}

// NewCalculationEngine builds the exemption schedule for rc and wires the engine
func NewCalculationEngine(rc domain.RateConfig) *CalculationEngine {
	return NewCalculationEngineWithOptions(rc, DefaultSolverOptions())
}

// NewCalculationEngineWithOptions is NewCalculationEngine with explicit solver options
func NewCalculationEngineWithOptions(rc domain.RateConfig, options SolverOptions) *CalculationEngine {
	return newEngine(rc, BuildExemptionSchedule(rc), options, NopLogger{})
}

func newEngine(rc domain.RateConfig, schedule *ExemptionSchedule, options SolverOptions, logger Logger) *CalculationEngine {
	deductions := NewDeductionEngine(rc, schedule)
	return &CalculationEngine{
		Rates:      rc,
		Schedule:   schedule,
		Deductions: deductions,
		Simulator:  NewAnnualPayrollSimulator(deductions, options),
		Options:    options,
		Logger:     logger,
	}
}

// SetLogger sets the logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// WithRates returns a new engine for rc. The exemption schedule is reused when
// only employer-side parameters differ and rebuilt otherwise. The receiver is
// not modified, so runs in flight keep their snapshot.
func (ce *CalculationEngine) WithRates(rc domain.RateConfig) *CalculationEngine {
	schedule := ce.Schedule
	if !ce.Rates.WorkerSideEqual(rc) {
		ce.Logger.Debugf("worker-side rates changed, rebuilding exemption schedule")
		schedule = BuildExemptionSchedule(rc)
	}
	next := newEngine(rc, schedule, ce.Options, ce.Logger)
	next.Workers = ce.Workers
	return next
}

// ComputeMonth returns the breakdown for a single month
func (ce *CalculationEngine) ComputeMonth(gross decimal.Decimal, month int, cumulativeTaxBase decimal.Decimal) (domain.MonthlyDeductionResult, error) {
	return ce.Deductions.Compute(gross, month, cumulativeTaxBase)
}

// SolveGross finds the gross wage paying targetNet in the given month
func (ce *CalculationEngine) SolveGross(targetNet decimal.Decimal, month int, cumulativeTaxBase decimal.Decimal) (SolveResult, error) {
	return ce.Simulator.Solver.SolveGross(targetNet, month, cumulativeTaxBase)
}

// SimulateYear runs one wage through the fiscal year
func (ce *CalculationEngine) SimulateYear(wage decimal.Decimal, mode domain.CalculationMode, corporateTaxRate decimal.Decimal) (*domain.AnnualSimulation, error) {
	return ce.Simulator.SimulateYear(wage, mode, corporateTaxRate)
}

// SimulateEmployee applies the raise and simulates the employee's year
func (ce *CalculationEngine) SimulateEmployee(emp domain.Employee, params domain.SimulationParams) (*domain.EmployeeResult, error) {
	target := params.TargetWage(emp.CurrentWage)
	sim, err := ce.Simulator.SimulateYear(target, params.Mode, params.CorporateTaxRate)
	if err != nil {
		return nil, fmt.Errorf("employee %s: %w", emp.Name, err)
	}
	if params.Mode == domain.GrossAnchored && target.LessThan(ce.Rates.MinimumGrossWage()) {
		ce.Logger.Debugf("employee %s: gross %s raised to statutory minimum %s", emp.Name, target.StringFixed(2), ce.Rates.MinimumGrossWage().StringFixed(2))
	}
	return &domain.EmployeeResult{Employee: emp, TargetWage: target, Simulation: *sim}, nil
}

// RunBatch simulates every employee in parallel. Results keep the input order
// whatever the scheduling, and the first failure cancels the rest.
func (ce *CalculationEngine) RunBatch(ctx context.Context, employees []domain.Employee, params domain.SimulationParams) (*domain.BatchResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ce.Logger.Infof("run %s: simulating %d employees (%s mode, tier %q)", runID, len(employees), params.Mode, ce.Rates.IncentiveTier())

	results := make([]domain.EmployeeResult, len(employees))
	g, ctx := errgroup.WithContext(ctx)
	workers := ce.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i := range employees {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ce.SimulateEmployee(employees[i], params)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		ce.Logger.Errorf("run %s failed: %v", runID, err)
		return nil, err
	}

	batch := &domain.BatchResult{
		RunID:         runID,
		Year:          ce.Rates.Year(),
		Params:        params,
		IncentiveTier: ce.Rates.IncentiveTier(),
		Rates:         ce.Rates.Spec(),
		Employees:     results,
	}
	for _, r := range results {
		batch.TotalAnnualCost = batch.TotalAnnualCost.Add(r.Simulation.Totals.TotalEmployerCost)
		batch.TotalCorporateTaxSaving = batch.TotalCorporateTaxSaving.Add(r.Simulation.Totals.CorporateTaxSaving)
		batch.TotalNetEmployerCost = batch.TotalNetEmployerCost.Add(r.Simulation.Totals.NetEmployerCost)
	}
	ce.Logger.Infof("run %s: total annual cost %s", runID, batch.TotalAnnualCost.StringFixed(2))
	return batch, nil
}

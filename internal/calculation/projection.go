package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

// annualState is the per-employee accumulator threaded through the twelve
// months. It is owned by a single SimulateYear call.
type annualState struct {
	cumulativeTaxBase decimal.Decimal
	totals            domain.AnnualTotals
}

// AnnualPayrollSimulator runs a fiscal year for one wage
type AnnualPayrollSimulator struct {
	Engine *DeductionEngine
	Solver *GrossFromNetSolver
}

// NewAnnualPayrollSimulator wires a simulator around engine
func NewAnnualPayrollSimulator(engine *DeductionEngine, options SolverOptions) *AnnualPayrollSimulator {
	return &AnnualPayrollSimulator{
		Engine: engine,
		Solver: NewGrossFromNetSolver(engine, options),
	}
}

// SimulateYear projects twelve months for wage. In GrossAnchored mode the wage
// is the monthly gross, held flat; in NetAnchored mode it is the monthly net
// and gross is solved for each month as the cumulative base grows.
func (aps *AnnualPayrollSimulator) SimulateYear(wage decimal.Decimal, mode domain.CalculationMode, corporateTaxRate decimal.Decimal) (*domain.AnnualSimulation, error) {
	if wage.IsNegative() {
		return nil, &domain.WageError{Wage: wage, Message: "wage cannot be negative"}
	}
	if mode != domain.GrossAnchored && mode != domain.NetAnchored {
		return nil, fmt.Errorf("%w: unknown calculation mode %q", domain.ErrInvalidInput, mode)
	}

	sim := &domain.AnnualSimulation{
		Mode:   mode,
		Wage:   wage,
		Months: make([]domain.MonthlyDeductionResult, 0, domain.MonthsPerYear),
	}
	state := annualState{cumulativeTaxBase: decimal.Zero}

	for month := 0; month < domain.MonthsPerYear; month++ {
		gross := wage
		if mode == domain.NetAnchored {
			solved, err := aps.Solver.SolveGross(wage, month, state.cumulativeTaxBase)
			if err != nil {
				return nil, fmt.Errorf("month %d: failed to solve gross wage: %w", month+1, err)
			}
			gross = solved.GrossWage
		}

		result, err := aps.Engine.Compute(gross, month, state.cumulativeTaxBase)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", month+1, err)
		}
		sim.Months = append(sim.Months, result)
		state.cumulativeTaxBase = state.cumulativeTaxBase.Add(result.IncomeTaxBase)
		state.totals.Add(result)
	}

	totals := state.totals
	totals.FinalCumulativeBase = state.cumulativeTaxBase
	totals.CorporateTaxSaving = totals.TotalEmployerCost.Mul(corporateTaxRate)
	totals.NetEmployerCost = totals.TotalEmployerCost.Sub(totals.CorporateTaxSaving)
	sim.Totals = totals

	return sim, nil
}

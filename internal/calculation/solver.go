package calculation

import (
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// SolverOptions configures the gross-from-net bisection
type SolverOptions struct {
	MaxIterations int             // bisection steps on [net, 2*net]
	Tolerance     decimal.Decimal // acceptable |net(gross) - target|
}

// DefaultSolverOptions returns the solver defaults.
//
// Twenty halvings of [N, 2N] leave an error of N/2^21 in gross, which is more
// than a kuruş once N exceeds roughly 21,000, so the default budget is larger.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 48,
		Tolerance:     decimal.NewFromFloat(0.01),
	}
}

// SolveResult is the outcome of one gross-from-net search
type SolveResult struct {
	GrossWage  decimal.Decimal
	NetPay     decimal.Decimal // net pay at GrossWage
	Iterations int
	Converged  bool // NetPay within tolerance of the target
}

// GrossFromNetSolver inverts DeductionEngine: it finds the gross wage whose
// net pay matches a target. It relies on net pay being non-decreasing in gross.
type GrossFromNetSolver struct {
	Engine  *DeductionEngine
	Options SolverOptions
}

// NewGrossFromNetSolver creates a solver with explicit options
func NewGrossFromNetSolver(engine *DeductionEngine, options SolverOptions) *GrossFromNetSolver {
	return &GrossFromNetSolver{Engine: engine, Options: options}
}

// NewDefaultGrossFromNetSolver creates a solver with default options
func NewDefaultGrossFromNetSolver(engine *DeductionEngine) *GrossFromNetSolver {
	return NewGrossFromNetSolver(engine, DefaultSolverOptions())
}

// SolveGross searches [targetNet, 2*targetNet] for the gross wage paying
// targetNet in the given month. Running out of iterations is not an error;
// the last midpoint is returned with Converged=false.
func (s *GrossFromNetSolver) SolveGross(targetNet decimal.Decimal, month int, cumulativeTaxBase decimal.Decimal) (SolveResult, error) {
	if targetNet.IsNegative() {
		return SolveResult{}, &domain.WageError{Wage: targetNet, Message: "target net wage cannot be negative"}
	}

	maxIterations := s.Options.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultSolverOptions().MaxIterations
	}
	tolerance := s.Options.Tolerance
	if !tolerance.IsPositive() {
		tolerance = DefaultSolverOptions().Tolerance
	}

	low := targetNet
	high := targetNet.Mul(two)
	var result SolveResult

	// Binary search for the gross wage
	for result.Iterations < maxIterations {
		result.Iterations++
		mid := low.Add(high).Div(two)

		res, err := s.Engine.Compute(mid, month, cumulativeTaxBase)
		if err != nil {
			return SolveResult{}, err
		}
		result.GrossWage = mid
		result.NetPay = res.NetPay

		diff := res.NetPay.Sub(targetNet)
		if diff.Abs().LessThan(tolerance) {
			result.Converged = true
			return result, nil
		}

		// Adjust bounds
		if diff.IsNegative() {
			low = mid
		} else {
			high = mid
		}
	}

	return result, nil
}

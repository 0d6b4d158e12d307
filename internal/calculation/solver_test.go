package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGrossFromNetSolver(t *testing.T) {
	de := newDefaultDeductionEngine()
	solver := NewDefaultGrossFromNetSolver(de)

	assert.Equal(t, de, solver.Engine)
	assert.Equal(t, DefaultSolverOptions().MaxIterations, solver.Options.MaxIterations)
	assert.True(t, solver.Options.Tolerance.Equal(dec("0.01")))
}

func TestDefaultSolverOptions_BudgetCoversKurusTolerance(t *testing.T) {
	opts := DefaultSolverOptions()
	assert.Equal(t, 48, opts.MaxIterations)

	// After n halvings of [N, 2N] the midpoint is within N/2^(n+1) of the root.
	// Twenty steps miss a kuruş above roughly 21,000; the default does not
	// for a wage of ten million.
	wage := dec("10000000")
	assert.True(t, wage.Div(decimal.NewFromInt(1<<21)).GreaterThan(opts.Tolerance))
	assert.True(t, wage.Div(decimal.NewFromInt(1<<(opts.MaxIterations+1))).LessThan(opts.Tolerance))

	solved, err := NewDefaultGrossFromNetSolver(newDefaultDeductionEngine()).SolveGross(wage, 3, dec("900000"))
	require.NoError(t, err)
	assert.True(t, solved.Converged, "did not converge after %d iterations", solved.Iterations)
	assert.LessOrEqual(t, solved.Iterations, opts.MaxIterations)
}

func TestGrossFromNetSolver_RoundTrip(t *testing.T) {
	de := newDefaultDeductionEngine()
	solver := NewDefaultGrossFromNetSolver(de)
	tolerance := dec("0.01")

	tests := []struct {
		name       string
		net        string
		month      int
		cumulative string
	}{
		{"minimum net", "28075.50", 0, "0"},
		{"modest wage", "30000", 0, "0"},
		{"mid wage", "50000", 5, "250000"},
		{"above sgk ceiling", "250000", 2, "600000"},
		{"top bracket", "1000000", 11, "5000000"},
		{"odd cents", "41234.57", 7, "190000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := dec(tt.net)
			cumulative := dec(tt.cumulative)

			solved, err := solver.SolveGross(target, tt.month, cumulative)
			require.NoError(t, err)
			assert.True(t, solved.Converged, "did not converge after %d iterations", solved.Iterations)

			res, err := de.Compute(solved.GrossWage, tt.month, cumulative)
			require.NoError(t, err)
			diff := res.NetPay.Sub(target).Abs()
			assert.True(t, diff.LessThan(tolerance), "net %s differs from target %s by %s", res.NetPay, target, diff)
			assert.True(t, solved.GrossWage.GreaterThanOrEqual(target), "gross below net")
		})
	}
}

func TestGrossFromNetSolver_TwentyIterationBound(t *testing.T) {
	de := newDefaultDeductionEngine()
	solver := NewGrossFromNetSolver(de, SolverOptions{MaxIterations: 20, Tolerance: dec("0.01")})

	target := dec("250000")
	solved, err := solver.SolveGross(target, 0, decimal.Zero)
	require.NoError(t, err)
	assert.LessOrEqual(t, solved.Iterations, 20)

	// Net pay rises at most one for one with gross, so the error is bounded
	// by the final interval width.
	bound := target.Div(decimal.NewFromInt(1 << 20))
	assert.True(t, solved.NetPay.Sub(target).Abs().LessThanOrEqual(bound), "error %s exceeds %s", solved.NetPay.Sub(target).Abs(), bound)
}

func TestGrossFromNetSolver_ZeroOptionsUseDefaults(t *testing.T) {
	de := newDefaultDeductionEngine()
	solver := NewGrossFromNetSolver(de, SolverOptions{})

	solved, err := solver.SolveGross(dec("60000"), 0, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, solved.Converged)
}

func TestGrossFromNetSolver_NegativeTarget(t *testing.T) {
	solver := NewDefaultGrossFromNetSolver(newDefaultDeductionEngine())

	_, err := solver.SolveGross(dec("-100"), 0, decimal.Zero)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidWage))
}

func TestGrossFromNetSolver_InvalidMonth(t *testing.T) {
	solver := NewDefaultGrossFromNetSolver(newDefaultDeductionEngine())

	_, err := solver.SolveGross(dec("40000"), 13, decimal.Zero)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGrossFromNetSolver_BelowMinimumNetDoesNotConverge(t *testing.T) {
	solver := NewGrossFromNetSolver(newDefaultDeductionEngine(), SolverOptions{MaxIterations: 20, Tolerance: dec("0.01")})

	// No gross pays less than the minimum net wage
	solved, err := solver.SolveGross(dec("20000"), 0, decimal.Zero)
	require.NoError(t, err)
	assert.False(t, solved.Converged)
	assert.Equal(t, 20, solved.Iterations)
	assert.True(t, solved.NetPay.Equal(dec("28075.50")))
}

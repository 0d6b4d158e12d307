package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultSimulator() *AnnualPayrollSimulator {
	return NewAnnualPayrollSimulator(newDefaultDeductionEngine(), DefaultSolverOptions())
}

func TestAnnualPayrollSimulator_GrossAnchored(t *testing.T) {
	sim, err := newDefaultSimulator().SimulateYear(dec("100000"), domain.GrossAnchored, dec("0.25"))
	require.NoError(t, err)
	require.Len(t, sim.Months, domain.MonthsPerYear)

	cumulative := decimal.Zero
	var sumBase, sumNet, sumCost decimal.Decimal
	for i, m := range sim.Months {
		assert.Equal(t, i, m.Month)
		assert.True(t, m.GrossWage.Equal(dec("100000")), "gross is held flat, month %d", i)
		assert.True(t, m.CumulativeTaxBase.Equal(cumulative), "month %d carried %s, want %s", i, m.CumulativeTaxBase, cumulative)
		cumulative = cumulative.Add(m.IncomeTaxBase)
		sumBase = sumBase.Add(m.IncomeTaxBase)
		sumNet = sumNet.Add(m.NetPay)
		sumCost = sumCost.Add(m.TotalEmployerCost)
	}

	totals := sim.Totals
	assert.True(t, totals.FinalCumulativeBase.Equal(sumBase), "final base %s != sum %s", totals.FinalCumulativeBase, sumBase)
	assert.True(t, totals.FinalCumulativeBase.Equal(dec("1020000")))
	assert.True(t, totals.NetPay.Equal(sumNet))
	assert.True(t, totals.TotalEmployerCost.Equal(sumCost))
	assert.True(t, totals.TotalEmployerCost.Equal(dec("1485000")))
	assert.True(t, totals.CorporateTaxSaving.Equal(dec("371250")))
	assert.True(t, totals.NetEmployerCost.Equal(dec("1113750")))
	assert.True(t, totals.EmployerSGK.Equal(dec("261000")))
	assert.True(t, totals.WorkerSGK.Equal(dec("168000")))

	// Net pay falls as the cumulative base climbs the brackets
	assert.True(t, sim.Months[11].NetPay.LessThan(sim.Months[0].NetPay))
}

func TestAnnualPayrollSimulator_MinimumWageYear(t *testing.T) {
	sim, err := newDefaultSimulator().SimulateYear(dec("33030"), domain.GrossAnchored, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, sim.Totals.PayableIncomeTax.IsZero())
	assert.True(t, sim.Totals.PayableStampTax.IsZero())
	assert.True(t, sim.Totals.NetPay.Equal(dec("336906")), "annual net = %s", sim.Totals.NetPay)
	assert.True(t, sim.Totals.CorporateTaxSaving.IsZero())
	assert.True(t, sim.Totals.NetEmployerCost.Equal(sim.Totals.TotalEmployerCost))
}

func TestAnnualPayrollSimulator_NetAnchored(t *testing.T) {
	target := dec("60000")
	sim, err := newDefaultSimulator().SimulateYear(target, domain.NetAnchored, dec("0.25"))
	require.NoError(t, err)
	require.Len(t, sim.Months, domain.MonthsPerYear)

	var sumBase decimal.Decimal
	for i, m := range sim.Months {
		diff := m.NetPay.Sub(target).Abs()
		assert.True(t, diff.LessThan(dec("0.01")), "month %d net %s", i, m.NetPay)
		assert.True(t, m.GrossWage.GreaterThan(target), "month %d gross %s", i, m.GrossWage)
		sumBase = sumBase.Add(m.IncomeTaxBase)
	}
	assert.True(t, sim.Totals.FinalCumulativeBase.Equal(sumBase))
	assert.Equal(t, domain.NetAnchored, sim.Mode)
}

func TestAnnualPayrollSimulator_InvalidInput(t *testing.T) {
	simulator := newDefaultSimulator()

	_, err := simulator.SimulateYear(dec("-1"), domain.GrossAnchored, decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrInvalidWage))

	_, err = simulator.SimulateYear(dec("1000"), domain.CalculationMode("weekly"), decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAnnualPayrollSimulator_Deterministic(t *testing.T) {
	simulator := newDefaultSimulator()

	a, err := simulator.SimulateYear(dec("75000"), domain.NetAnchored, dec("0.2"))
	require.NoError(t, err)
	b, err := simulator.SimulateYear(dec("75000"), domain.NetAnchored, dec("0.2"))
	require.NoError(t, err)

	assert.True(t, a.Totals.TotalEmployerCost.Equal(b.Totals.TotalEmployerCost))
	assert.True(t, a.Totals.FinalCumulativeBase.Equal(b.Totals.FinalCumulativeBase))
}

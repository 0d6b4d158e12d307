package integration

import (
	"bytes"
	"context"
	"testing"

	"github.com/rgehrsitz/bordro/internal/calculation"
	"github.com/rgehrsitz/bordro/internal/compare"
	"github.com/rgehrsitz/bordro/internal/config"
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/rgehrsitz/bordro/internal/output"
	"github.com/rgehrsitz/bordro/internal/roster"
	"github.com/rgehrsitz/bordro/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	simulationFile = "../../internal/config/testdata/simulation.yaml"
	ratesFile      = "../../internal/config/testdata/rates_2026.toml"
	personnelFile  = "../../internal/roster/testdata/personel.csv"
)

func loadSimulation(t *testing.T) *config.Simulation {
	t.Helper()
	sim, err := config.NewInputParser().LoadSimulationWithRates(simulationFile, ratesFile)
	require.NoError(t, err)
	require.Len(t, sim.Employees, 3)
	return sim
}

// TestEndToEnd runs a net-anchored YAML simulation through every report format
func TestEndToEnd(t *testing.T) {
	sim := loadSimulation(t)
	engine := calculation.NewCalculationEngine(sim.Rates)

	batch, err := engine.RunBatch(context.Background(), sim.Employees, sim.Params)
	require.NoError(t, err)
	require.Len(t, batch.Employees, 3)

	t.Run("net_anchored_months_hit_target", func(t *testing.T) {
		for _, er := range batch.Employees {
			for _, m := range er.Simulation.Months {
				assert.InDelta(t, er.TargetWage.InexactFloat64(), m.NetPay.InexactFloat64(), 0.05,
					"%s %s", er.Employee.Name, m.MonthName())
			}
		}
	})

	t.Run("totals_add_up", func(t *testing.T) {
		sum := decimal.Zero
		for _, er := range batch.Employees {
			sum = sum.Add(er.Simulation.Totals.TotalEmployerCost)
		}
		assert.True(t, sum.Equal(batch.TotalAnnualCost))
		assert.True(t, batch.TotalAnnualCost.Sub(batch.TotalCorporateTaxSaving).Equal(batch.TotalNetEmployerCost))
	})

	t.Run("output_generation", func(t *testing.T) {
		for _, format := range []string{"console", "table", "csv", "json"} {
			var buf bytes.Buffer
			require.NoError(t, output.GenerateReport(&buf, batch, format), format)
			assert.NotEmpty(t, buf.String(), format)
		}
		for _, format := range []string{"console", "csv", "json", "pdf"} {
			var buf bytes.Buffer
			require.NoError(t, output.GeneratePayslip(&buf, &batch.Employees[0], format), format)
			assert.NotZero(t, buf.Len(), format)
		}
	})
}

// TestCalculationConsistency checks that repeated and differently scheduled
// runs agree on every amount
func TestCalculationConsistency(t *testing.T) {
	sim := loadSimulation(t)

	serial := calculation.NewCalculationEngine(sim.Rates)
	serial.Workers = 1
	parallel := calculation.NewCalculationEngine(sim.Rates)
	parallel.Workers = 8

	a, err := serial.RunBatch(context.Background(), sim.Employees, sim.Params)
	require.NoError(t, err)
	b, err := parallel.RunBatch(context.Background(), sim.Employees, sim.Params)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.True(t, a.TotalAnnualCost.Equal(b.TotalAnnualCost))
	for i := range a.Employees {
		assert.Equal(t, a.Employees[i].Employee.Name, b.Employees[i].Employee.Name)
		assert.True(t, a.Employees[i].Simulation.Totals.NetPay.Equal(b.Employees[i].Simulation.Totals.NetPay))
	}
}

// TestRosterToComparison reads the CSV roster and compares incentive tiers
func TestRosterToComparison(t *testing.T) {
	result, err := roster.ReadFile(personnelFile, roster.Options{})
	require.NoError(t, err)
	require.Len(t, result.Employees, 3)

	rc := domain.DefaultRates2026()
	base := &transform.Scenario{Name: "mevcut", Rates: rc, Params: domain.DefaultSimulationParams()}

	ce := compare.NewCompareEngine(calculation.NewCalculationEngine(rc))
	set, err := ce.Compare(context.Background(), result.Employees, base, compare.CompareOptions{
		Templates: []string{"manufacturing", "non_manufacturing", "standard"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 3)

	mfg, nonMfg, std := set.AlternativeResults[0], set.AlternativeResults[1], set.AlternativeResults[2]
	assert.True(t, mfg.TotalNetEmployerCost.LessThan(nonMfg.TotalNetEmployerCost))
	assert.True(t, nonMfg.TotalNetEmployerCost.LessThan(std.TotalNetEmployerCost))
	assert.True(t, std.CostDiffFromBase.IsZero(), "standard tier matches the default employer rate")
	for _, alt := range set.AlternativeResults {
		assert.True(t, alt.TotalNetPay.Equal(set.BaseResult.TotalNetPay), alt.ScenarioName)
	}
}

package compare

import (
	"fmt"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/rgehrsitz/bordro/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one scenario's batch run reduced to its headline numbers
type ComparisonResult struct {
	ScenarioName string              `json:"scenarioName"`
	Description  string              `json:"description"`
	Batch        *domain.BatchResult `json:"-"`

	// Key Metrics
	TotalGrossWage          decimal.Decimal `json:"totalGrossWage"`
	TotalNetPay             decimal.Decimal `json:"totalNetPay"`
	TotalTaxes              decimal.Decimal `json:"totalTaxes"` // payable income tax plus stamp duty
	TotalAnnualCost         decimal.Decimal `json:"totalAnnualCost"`
	TotalCorporateTaxSaving decimal.Decimal `json:"totalCorporateTaxSaving"`
	TotalNetEmployerCost    decimal.Decimal `json:"totalNetEmployerCost"`

	// Comparison to Base
	CostDiffFromBase   decimal.Decimal `json:"costDiffFromBase"`
	CostPctFromBase    decimal.Decimal `json:"costPctFromBase"`
	NetPayDiffFromBase decimal.Decimal `json:"netPayDiffFromBase"`
	TaxDiffFromBase    decimal.Decimal `json:"taxDiffFromBase"`

	// Scenario specifics for display
	Mode          domain.CalculationMode `json:"mode"`
	RaiseRate     decimal.Decimal        `json:"raiseRate"`
	IncentiveTier domain.IncentiveTier   `json:"incentiveTier,omitempty"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath"`
	Employees          int                `json:"employees"`
}

// MetricsCalculator extracts key metrics from batch results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics folds a batch into a comparison row
func (mc *MetricsCalculator) CalculateMetrics(name string, batch *domain.BatchResult) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:            name,
		Batch:                   batch,
		TotalAnnualCost:         batch.TotalAnnualCost,
		TotalCorporateTaxSaving: batch.TotalCorporateTaxSaving,
		TotalNetEmployerCost:    batch.TotalNetEmployerCost,
		Mode:                    batch.Params.Mode,
		RaiseRate:               batch.Params.RaiseRate,
		IncentiveTier:           batch.IncentiveTier,
	}

	for _, er := range batch.Employees {
		t := er.Simulation.Totals
		result.TotalGrossWage = result.TotalGrossWage.Add(t.GrossWage)
		result.TotalNetPay = result.TotalNetPay.Add(t.NetPay)
		result.TotalTaxes = result.TotalTaxes.Add(t.PayableIncomeTax).Add(t.PayableStampTax)
	}

	return result
}

// CalculateComparison computes deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.CostDiffFromBase = scenario.TotalNetEmployerCost.Sub(base.TotalNetEmployerCost)

	if !base.TotalNetEmployerCost.IsZero() {
		scenario.CostPctFromBase = scenario.CostDiffFromBase.
			Div(base.TotalNetEmployerCost).
			Mul(decimal.NewFromInt(100))
	}

	scenario.NetPayDiffFromBase = scenario.TotalNetPay.Sub(base.TotalNetPay)
	scenario.TaxDiffFromBase = scenario.TotalTaxes.Sub(base.TotalTaxes)

	return scenario
}

// GenerateRecommendations points at the cheapest scenario and the one that
// pays employees the most
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	cheapest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalNetEmployerCost.LessThan(cheapest.TotalNetEmployerCost) {
			cheapest = alt
		}
	}

	if cheapest != compSet.BaseResult {
		saving := compSet.BaseResult.TotalNetEmployerCost.Sub(cheapest.TotalNetEmployerCost)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Cost: %s saves %s in net employer cost", cheapest.ScenarioName, output.FormatLira(saving)))
	}

	bestPay := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalNetPay.GreaterThan(bestPay.TotalNetPay) {
			bestPay = alt
		}
	}

	if bestPay != compSet.BaseResult {
		gain := bestPay.TotalNetPay.Sub(compSet.BaseResult.TotalNetPay)
		extra := bestPay.TotalNetEmployerCost.Sub(compSet.BaseResult.TotalNetEmployerCost)
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Net Pay: %s pays employees %s more for %s of extra net cost",
				bestPay.ScenarioName, output.FormatLira(gain), output.FormatLira(extra)))
	}

	return recommendations
}

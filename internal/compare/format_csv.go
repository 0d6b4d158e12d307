package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Senaryo",
		"Tip",
		"Mod",
		"Zam_Orani",
		"Tesvik",
		"Toplam_Brut",
		"Toplam_Net",
		"Toplam_Vergi",
		"Toplam_Yillik_Maliyet",
		"Kurumlar_Vergisi_Tasarrufu",
		"Net_Isveren_Maliyeti",
		"Maliyet_Farki",
		"Maliyet_Farki_Yuzde",
		"Net_Ucret_Farki",
		"Vergi_Farki",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		string(result.Mode),
		result.RaiseRate.StringFixed(4),
		string(result.IncentiveTier),
		result.TotalGrossWage.StringFixed(2),
		result.TotalNetPay.StringFixed(2),
		result.TotalTaxes.StringFixed(2),
		result.TotalAnnualCost.StringFixed(2),
		result.TotalCorporateTaxSaving.StringFixed(2),
		result.TotalNetEmployerCost.StringFixed(2),
		result.CostDiffFromBase.StringFixed(2),
		result.CostPctFromBase.StringFixed(2),
		result.NetPayDiffFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
	}
}

package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/bordro/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("BORDRO SENARYO KARŞILAŞTIRMASI\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s (%d employees)\n", compSet.InputPath, compSet.Employees))
	}
	sb.WriteString("\n")

	nameWidth := 26
	numWidth := 16

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Annual Cost",
		numWidth, "KV Saving",
		numWidth, "Net Cost",
		numWidth, "Net Pay"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Net Employer Cost: %s%s (%s%%)\n",
				tf.deltaSymbol(alt.CostDiffFromBase),
				output.FormatLira(alt.CostDiffFromBase.Abs()),
				alt.CostPctFromBase.StringFixed(1)))
			sb.WriteString(fmt.Sprintf("  Net Pay:           %s%s\n",
				tf.deltaSymbol(alt.NetPayDiffFromBase),
				output.FormatLira(alt.NetPayDiffFromBase.Abs())))
			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Income+Stamp Tax:  %s%s\n",
					tf.deltaSymbol(alt.TaxDiffFromBase),
					output.FormatLira(alt.TaxDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.TotalAnnualCost),
		numWidth, tf.formatDecimal(result.TotalCorporateTaxSaving),
		numWidth, tf.formatDecimal(result.TotalNetEmployerCost),
		numWidth, tf.formatDecimal(result.TotalNetPay))
}

// formatDecimal abbreviates large amounts in thousands or millions of lira
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M TL"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K TL"
	}
	return d.StringFixed(0) + " TL"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate shortens s to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.CostDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.CostDiffFromBase) + tf.formatDecimal(alt.CostDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}

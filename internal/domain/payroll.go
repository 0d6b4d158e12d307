package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MonthsPerYear is the length of the fiscal year simulation
const MonthsPerYear = 12

// MonthNames holds the Turkish calendar month names used on payslips
var MonthNames = [MonthsPerYear]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// CalculationMode tells the simulator which side of the payslip is fixed
type CalculationMode string

const (
	GrossAnchored CalculationMode = "gross"
	NetAnchored   CalculationMode = "net"
)

// ParseCalculationMode accepts the English and Turkish spellings
func ParseCalculationMode(s string) (CalculationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gross", "brut", "brüt", "":
		return GrossAnchored, nil
	case "net":
		return NetAnchored, nil
	default:
		return "", fmt.Errorf("%w: unknown calculation mode %q", ErrInvalidInput, s)
	}
}

// ExemptionEntry is the minimum wage tax credit for one calendar month
type ExemptionEntry struct {
	IncomeTaxExemption decimal.Decimal `json:"incomeTaxExemption"`
	StampDutyExemption decimal.Decimal `json:"stampDutyExemption"`
}

// MonthlyDeductionResult is the full gross-to-net breakdown for one month
type MonthlyDeductionResult struct {
	Month                int             `json:"month"`
	GrossWage            decimal.Decimal `json:"grossWage"`
	SGKBase              decimal.Decimal `json:"sgkBase"`
	NetPay               decimal.Decimal `json:"netPay"`
	WorkerSGK            decimal.Decimal `json:"workerSgk"`
	WorkerUnemployment   decimal.Decimal `json:"workerUnemployment"`
	IncomeTaxBase        decimal.Decimal `json:"incomeTaxBase"`
	CumulativeTaxBase    decimal.Decimal `json:"cumulativeTaxBase"` // as carried in, before this month
	RawIncomeTax         decimal.Decimal `json:"rawIncomeTax"`
	IncomeTaxExemption   decimal.Decimal `json:"incomeTaxExemption"`
	PayableIncomeTax     decimal.Decimal `json:"payableIncomeTax"`
	RawStampTax          decimal.Decimal `json:"rawStampTax"`
	StampDutyExemption   decimal.Decimal `json:"stampDutyExemption"`
	PayableStampTax      decimal.Decimal `json:"payableStampTax"`
	EmployerSGK          decimal.Decimal `json:"employerSgk"`
	EmployerUnemployment decimal.Decimal `json:"employerUnemployment"`
	TotalEmployerCost    decimal.Decimal `json:"totalEmployerCost"`
}

// MonthName returns the calendar name of r.Month
func (r MonthlyDeductionResult) MonthName() string {
	if r.Month < 0 || r.Month >= MonthsPerYear {
		return ""
	}
	return MonthNames[r.Month]
}

// TotalWorkerDeductions sums everything withheld from the gross wage
func (r MonthlyDeductionResult) TotalWorkerDeductions() decimal.Decimal {
	return r.WorkerSGK.Add(r.WorkerUnemployment).Add(r.PayableIncomeTax).Add(r.PayableStampTax)
}

// AnnualTotals aggregates twelve monthly results for one employee
type AnnualTotals struct {
	GrossWage            decimal.Decimal `json:"grossWage"`
	NetPay               decimal.Decimal `json:"netPay"`
	WorkerSGK            decimal.Decimal `json:"workerSgk"`
	WorkerUnemployment   decimal.Decimal `json:"workerUnemployment"`
	IncomeTaxBase        decimal.Decimal `json:"incomeTaxBase"`
	RawIncomeTax         decimal.Decimal `json:"rawIncomeTax"`
	IncomeTaxExemption   decimal.Decimal `json:"incomeTaxExemption"`
	PayableIncomeTax     decimal.Decimal `json:"payableIncomeTax"`
	RawStampTax          decimal.Decimal `json:"rawStampTax"`
	StampDutyExemption   decimal.Decimal `json:"stampDutyExemption"`
	PayableStampTax      decimal.Decimal `json:"payableStampTax"`
	EmployerSGK          decimal.Decimal `json:"employerSgk"`
	EmployerUnemployment decimal.Decimal `json:"employerUnemployment"`
	TotalEmployerCost    decimal.Decimal `json:"totalEmployerCost"`
	FinalCumulativeBase  decimal.Decimal `json:"finalCumulativeBase"`
	CorporateTaxSaving   decimal.Decimal `json:"corporateTaxSaving"`
	NetEmployerCost      decimal.Decimal `json:"netEmployerCost"`
}

// Add folds one month into the totals. The cumulative base is tracked by the
// simulator, not here.
func (t *AnnualTotals) Add(r MonthlyDeductionResult) {
	t.GrossWage = t.GrossWage.Add(r.GrossWage)
	t.NetPay = t.NetPay.Add(r.NetPay)
	t.WorkerSGK = t.WorkerSGK.Add(r.WorkerSGK)
	t.WorkerUnemployment = t.WorkerUnemployment.Add(r.WorkerUnemployment)
	t.IncomeTaxBase = t.IncomeTaxBase.Add(r.IncomeTaxBase)
	t.RawIncomeTax = t.RawIncomeTax.Add(r.RawIncomeTax)
	t.IncomeTaxExemption = t.IncomeTaxExemption.Add(r.IncomeTaxExemption)
	t.PayableIncomeTax = t.PayableIncomeTax.Add(r.PayableIncomeTax)
	t.RawStampTax = t.RawStampTax.Add(r.RawStampTax)
	t.StampDutyExemption = t.StampDutyExemption.Add(r.StampDutyExemption)
	t.PayableStampTax = t.PayableStampTax.Add(r.PayableStampTax)
	t.EmployerSGK = t.EmployerSGK.Add(r.EmployerSGK)
	t.EmployerUnemployment = t.EmployerUnemployment.Add(r.EmployerUnemployment)
	t.TotalEmployerCost = t.TotalEmployerCost.Add(r.TotalEmployerCost)
}

// AnnualSimulation is one employee's simulated fiscal year
type AnnualSimulation struct {
	Mode   CalculationMode          `json:"mode"`
	Wage   decimal.Decimal          `json:"wage"`
	Months []MonthlyDeductionResult `json:"months"`
	Totals AnnualTotals             `json:"totals"`
}

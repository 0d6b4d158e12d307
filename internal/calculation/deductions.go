package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionEngine computes one month's payroll breakdown from a gross wage
type DeductionEngine struct {
	Rates     domain.RateConfig
	TaxCalc   *BracketTaxCalculator
	Exemption *ExemptionSchedule
}

// NewDeductionEngine wires an engine for rc. The schedule must have been built
// from a config with the same worker-side parameters.
func NewDeductionEngine(rc domain.RateConfig, schedule *ExemptionSchedule) *DeductionEngine {
	return &DeductionEngine{
		Rates:     rc,
		TaxCalc:   NewBracketTaxCalculator(rc),
		Exemption: schedule,
	}
}

// clampSGKBase bounds gross to the contribution floor and ceiling
func clampSGKBase(gross decimal.Decimal, rc domain.RateConfig) decimal.Decimal {
	return decimal.Min(decimal.Max(gross, rc.SGKFloor()), rc.SGKCeiling())
}

// SGKBase returns the wage SGK contributions are computed on
func (de *DeductionEngine) SGKBase(gross decimal.Decimal) decimal.Decimal {
	return clampSGKBase(gross, de.Rates)
}

// Compute returns the breakdown for grossWage in the given month, with
// cumulativeTaxBase being the income tax base already accrued this year.
// Gross wages below the statutory minimum are raised to it.
func (de *DeductionEngine) Compute(grossWage decimal.Decimal, month int, cumulativeTaxBase decimal.Decimal) (domain.MonthlyDeductionResult, error) {
	if grossWage.IsNegative() {
		return domain.MonthlyDeductionResult{}, &domain.WageError{Wage: grossWage, Message: "gross wage cannot be negative"}
	}
	if cumulativeTaxBase.IsNegative() {
		return domain.MonthlyDeductionResult{}, fmt.Errorf("%w: cumulative tax base cannot be negative (got %s)", domain.ErrInvalidInput, cumulativeTaxBase)
	}
	exemption, err := de.Exemption.Entry(month)
	if err != nil {
		return domain.MonthlyDeductionResult{}, err
	}

	rc := de.Rates
	gross := decimal.Max(grossWage, rc.MinimumGrossWage())
	sgkBase := clampSGKBase(gross, rc)

	workerSGK := sgkBase.Mul(rc.WorkerSGKRate())
	workerUnemployment := sgkBase.Mul(rc.WorkerUnemploymentRate())
	incomeTaxBase := gross.Sub(workerSGK).Sub(workerUnemployment)

	rawIncomeTax := de.TaxCalc.TaxOnSlice(cumulativeTaxBase, incomeTaxBase)
	payableIncomeTax := decimal.Max(decimal.Zero, rawIncomeTax.Sub(exemption.IncomeTaxExemption))

	rawStampTax := gross.Mul(rc.StampDutyRate())
	payableStampTax := decimal.Max(decimal.Zero, rawStampTax.Sub(exemption.StampDutyExemption))

	// Not clamped: a pathological rate table may drive this negative.
	netPay := gross.Sub(workerSGK).Sub(workerUnemployment).Sub(payableIncomeTax).Sub(payableStampTax)

	employerSGK := sgkBase.Mul(rc.EmployerSGKRate())
	employerUnemployment := sgkBase.Mul(rc.EmployerUnemploymentRate())

	return domain.MonthlyDeductionResult{
		Month:                month,
		GrossWage:            gross,
		SGKBase:              sgkBase,
		NetPay:               netPay,
		WorkerSGK:            workerSGK,
		WorkerUnemployment:   workerUnemployment,
		IncomeTaxBase:        incomeTaxBase,
		CumulativeTaxBase:    cumulativeTaxBase,
		RawIncomeTax:         rawIncomeTax,
		IncomeTaxExemption:   exemption.IncomeTaxExemption,
		PayableIncomeTax:     payableIncomeTax,
		RawStampTax:          rawStampTax,
		StampDutyExemption:   exemption.StampDutyExemption,
		PayableStampTax:      payableStampTax,
		EmployerSGK:          employerSGK,
		EmployerUnemployment: employerUnemployment,
		TotalEmployerCost:    gross.Add(employerSGK).Add(employerUnemployment),
	}, nil
}

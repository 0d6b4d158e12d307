package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

// ExemptionSchedule is the month-by-month minimum wage tax credit. It is built
// once per RateConfig and never modified afterwards.
type ExemptionSchedule struct {
	entries [domain.MonthsPerYear]domain.ExemptionEntry
}

// BuildExemptionSchedule simulates a full year of the minimum wage under rc and
// records what it would owe each month. Every employee's income tax and stamp
// duty are reduced by those amounts.
func BuildExemptionSchedule(rc domain.RateConfig) *ExemptionSchedule {
	taxCalc := NewBracketTaxCalculator(rc)
	minGross := rc.MinimumGrossWage()
	sgkBase := clampSGKBase(minGross, rc)
	taxBase := minGross.
		Sub(sgkBase.Mul(rc.WorkerSGKRate())).
		Sub(sgkBase.Mul(rc.WorkerUnemploymentRate()))
	stamp := minGross.Mul(rc.StampDutyRate())

	schedule := &ExemptionSchedule{}
	cumulative := decimal.Zero
	for month := 0; month < domain.MonthsPerYear; month++ {
		schedule.entries[month] = domain.ExemptionEntry{
			IncomeTaxExemption: taxCalc.TaxOnSlice(cumulative, taxBase),
			StampDutyExemption: stamp,
		}
		cumulative = cumulative.Add(taxBase)
	}
	return schedule
}

// Entry returns the exemption for a month index in [0,11]
func (s *ExemptionSchedule) Entry(month int) (domain.ExemptionEntry, error) {
	if month < 0 || month >= domain.MonthsPerYear {
		return domain.ExemptionEntry{}, fmt.Errorf("%w: month index %d out of range [0,%d]", domain.ErrInvalidInput, month, domain.MonthsPerYear-1)
	}
	return s.entries[month], nil
}

// Entries returns a copy of all twelve entries
func (s *ExemptionSchedule) Entries() []domain.ExemptionEntry {
	out := make([]domain.ExemptionEntry, domain.MonthsPerYear)
	copy(out, s.entries[:])
	return out
}

// AnnualIncomeTaxExemption is the total income tax credit over the year
func (s *ExemptionSchedule) AnnualIncomeTaxExemption() decimal.Decimal {
	var total decimal.Decimal
	for _, e := range s.entries {
		total = total.Add(e.IncomeTaxExemption)
	}
	return total
}

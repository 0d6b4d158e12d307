package calculation

import (
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

// INCOME TAX ASSUMPTIONS:
//
// 1. Income tax is assessed on the running annual tax base, not per month.
//    A month's tax is the tax on (cumulative + slice) minus the tax already
//    charged on cumulative.
//
// 2. The bracket table is the same for every month of the fiscal year.
//
// 3. Inputs are assumed non-negative. The engine validates wages before they
//    get here; this calculator does not clamp.

// BracketTaxCalculator computes progressive income tax from a bracket table
type BracketTaxCalculator struct {
	Brackets []domain.TaxBracket
}

// NewBracketTaxCalculator creates a calculator over the config's bracket table
func NewBracketTaxCalculator(rc domain.RateConfig) *BracketTaxCalculator {
	return &BracketTaxCalculator{Brackets: rc.Brackets()}
}

// TaxOnValue returns the tax owed on a total taxable amount v, from zero
func (btc *BracketTaxCalculator) TaxOnValue(v decimal.Decimal) decimal.Decimal {
	var tax decimal.Decimal
	lower := decimal.Zero
	for _, bracket := range btc.Brackets {
		if v.LessThanOrEqual(lower) {
			break
		}
		upper := v
		if !bracket.Unbounded {
			upper = decimal.Min(v, bracket.Limit)
		}
		tax = tax.Add(upper.Sub(lower).Mul(bracket.Rate))
		if bracket.Covers(v) {
			break
		}
		lower = bracket.Limit
	}
	return tax
}

// TaxOnSlice returns the marginal tax on slice stacked on top of an already
// taxed cumulative base within the same fiscal year.
func (btc *BracketTaxCalculator) TaxOnSlice(cumulativeBase, slice decimal.Decimal) decimal.Decimal {
	return btc.TaxOnValue(cumulativeBase.Add(slice)).Sub(btc.TaxOnValue(cumulativeBase))
}

// MarginalRate returns the rate that applies to the next unit of income above v
func (btc *BracketTaxCalculator) MarginalRate(v decimal.Decimal) decimal.Decimal {
	for _, bracket := range btc.Brackets {
		if bracket.Unbounded || v.LessThan(bracket.Limit) {
			return bracket.Rate
		}
	}
	return decimal.Zero
}

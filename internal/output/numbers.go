package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var hundred = decimal.NewFromInt(100)

// FormatAmount renders an amount with Turkish grouping, e.g. "45.000,50"
func FormatAmount(amount decimal.Decimal) string {
	p := message.NewPrinter(language.Turkish)
	return p.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatLira formats a decimal as Turkish lira
func FormatLira(amount decimal.Decimal) string {
	return FormatAmount(amount) + " TL"
}

// FormatPercentage formats a rate (0.2175) as a percentage ("%21,75")
func FormatPercentage(rate decimal.Decimal) string {
	return "%" + FormatAmount(rate.Mul(hundred))
}

// machine renders amounts for CSV and other machine-read outputs
func machine(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

package output

import (
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

// TotalLabel marks the summary row of a payslip table
const TotalLabel = "TOPLAM"

type payslipColumn struct {
	header string
	value  func(domain.MonthlyDeductionResult) decimal.Decimal
	summed bool
}

var payslipColumns = []payslipColumn{
	{"Brüt Ücret", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.GrossWage }, true},
	{"SGK İşçi", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.WorkerSGK }, true},
	{"İşsizlik İşçi", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.WorkerUnemployment }, true},
	{"GV Matrahı", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.IncomeTaxBase }, true},
	// a running figure; its sum means nothing
	{"Kümülatif GV Matrahı", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.CumulativeTaxBase }, false},
	{"Hesaplanan GV", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.RawIncomeTax }, true},
	{"GV İstisnası", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.IncomeTaxExemption }, true},
	{"Ödenecek GV", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.PayableIncomeTax }, true},
	{"Hesaplanan DV", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.RawStampTax }, true},
	{"DV İstisnası", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.StampDutyExemption }, true},
	{"Ödenecek DV", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.PayableStampTax }, true},
	{"Net Ele Geçen", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.NetPay }, true},
	{"SGK İşveren", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.EmployerSGK }, true},
	{"İşsizlik İşveren", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.EmployerUnemployment }, true},
	{"Toplam Maliyet", func(r domain.MonthlyDeductionResult) decimal.Decimal { return r.TotalEmployerCost }, true},
}

// PayslipRow is one line of the monthly payslip table. Values[i] is nil for
// a column that is not totalled on the TOPLAM row.
type PayslipRow struct {
	Label  string
	Values []*decimal.Decimal
}

// PayslipHeaders returns the column headers, month label first
func PayslipHeaders() []string {
	headers := make([]string, 0, len(payslipColumns)+1)
	headers = append(headers, "Ay")
	for _, c := range payslipColumns {
		headers = append(headers, c.header)
	}
	return headers
}

// BuildPayslip lays out twelve month rows followed by a TOPLAM row
func BuildPayslip(sim *domain.AnnualSimulation) []PayslipRow {
	rows := make([]PayslipRow, 0, len(sim.Months)+1)
	totals := make([]decimal.Decimal, len(payslipColumns))

	for _, m := range sim.Months {
		row := PayslipRow{Label: m.MonthName(), Values: make([]*decimal.Decimal, len(payslipColumns))}
		for i, c := range payslipColumns {
			v := c.value(m)
			row.Values[i] = &v
			totals[i] = totals[i].Add(v)
		}
		rows = append(rows, row)
	}

	total := PayslipRow{Label: TotalLabel, Values: make([]*decimal.Decimal, len(payslipColumns))}
	for i, c := range payslipColumns {
		if c.summed {
			v := totals[i]
			total.Values[i] = &v
		}
	}
	return append(rows, total)
}

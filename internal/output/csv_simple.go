package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rgehrsitz/bordro/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per employee,
// with cost, net and gross for every month).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.BatchResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Personel", "Departman", "Mevcut_Ucret", "Hedef_Ucret"}
	for m := 1; m <= domain.MonthsPerYear; m++ {
		header = append(header, fmt.Sprintf("Ay_%d_Maliyet", m), fmt.Sprintf("Ay_%d_Net", m), fmt.Sprintf("Ay_%d_Brut", m))
	}
	header = append(header,
		"Toplam_Yillik_Maliyet", "Yillik_Net_Ucret", "Yillik_SGK_Isci", "Yillik_SGK_Isveren",
		"Yillik_Gelir_Vergisi", "Yillik_Damga_Vergisi", "Kurumlar_Vergisi_Tasarrufu", "Net_Isveren_Maliyeti")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, er := range result.Employees {
		row := []string{er.Employee.Name, er.Employee.Department, machine(er.Employee.CurrentWage), machine(er.TargetWage)}
		for _, m := range er.Simulation.Months {
			row = append(row, machine(m.TotalEmployerCost), machine(m.NetPay), machine(m.GrossWage))
		}
		t := er.Simulation.Totals
		row = append(row,
			machine(t.TotalEmployerCost), machine(t.NetPay), machine(t.WorkerSGK), machine(t.EmployerSGK),
			machine(t.PayableIncomeTax), machine(t.PayableStampTax), machine(t.CorporateTaxSaving), machine(t.NetEmployerCost))
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVPayslip writes the monthly payslip table of one employee
type CSVPayslip struct{}

func (c CSVPayslip) Name() string { return "csv" }

func (c CSVPayslip) FormatPayslip(result *domain.EmployeeResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(PayslipHeaders()); err != nil {
		return nil, err
	}
	for _, r := range BuildPayslip(&result.Simulation) {
		row := make([]string, 0, len(r.Values)+1)
		row = append(row, r.Label)
		for _, v := range r.Values {
			if v == nil {
				row = append(row, "")
				continue
			}
			row = append(row, machine(*v))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

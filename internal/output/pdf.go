package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rgehrsitz/bordro/internal/domain"
)

// the core PDF fonts are cp1252; these Turkish letters are outside it
var pdfLetters = strings.NewReplacer(
	"ş", "s", "Ş", "S",
	"ğ", "g", "Ğ", "G",
	"ı", "i", "İ", "I",
)

// PDFPayslip renders a one-page landscape payslip
type PDFPayslip struct{}

func (p PDFPayslip) Name() string { return "pdf" }

func (p PDFPayslip) FormatPayslip(result *domain.EmployeeResult) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(pdfLetters.Replace(s)) }

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, text(fmt.Sprintf("Bordro: %s", result.Employee.Name)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	if result.Employee.Department != "" {
		pdf.Cell(0, 6, text(fmt.Sprintf("Departman: %s", result.Employee.Department)))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, text(fmt.Sprintf("Mod: %s   Ucret: %s TL", result.Simulation.Mode, FormatAmount(result.Simulation.Wage))))
	pdf.Ln(9)

	headers := PayslipHeaders()
	const labelWidth, valueWidth = 17.0, 16.6
	pdf.SetFont("Helvetica", "B", 6)
	for i, h := range headers {
		w := valueWidth
		if i == 0 {
			w = labelWidth
		}
		pdf.CellFormat(w, 7, text(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	rows := BuildPayslip(&result.Simulation)
	for ri, r := range rows {
		style := ""
		if ri == len(rows)-1 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 6.5)
		pdf.CellFormat(labelWidth, 6, text(r.Label), "1", 0, "L", false, 0, "")
		for _, v := range r.Values {
			cell := ""
			if v != nil {
				cell = FormatAmount(*v)
			}
			pdf.CellFormat(valueWidth, 6, cell, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip PDF: %w", err)
	}
	return buf.Bytes(), nil
}

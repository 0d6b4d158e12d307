package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/bordro/internal/domain"
)

var (
	colorPrimary = lipgloss.Color("#2563EB")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#16A34A")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess).Padding(0, 1)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)
)

// ConsoleFormatter renders human-readable reports for a terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.BatchResult) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%d MAAŞ MALİYET SİMÜLASYONU", result.Year)))
	sb.WriteString("\n")
	tier := string(result.IncentiveTier)
	if tier == "" {
		tier = "-"
	}
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("Çalıştırma: %s  Mod: %s  Zam: %s  Kurumlar Vergisi: %s  Teşvik: %s",
		result.RunID, result.Params.Mode, FormatPercentage(result.Params.RaiseRate),
		FormatPercentage(result.Params.CorporateTaxRate), tier)))
	sb.WriteString("\n\n")

	headers := []string{"Personel", "Departman", "Hedef Ücret", "Yıllık Maliyet", "Yıllık Net", "KV Tasarrufu", "Net Maliyet"}
	rows := make([][]string, 0, len(result.Employees))
	for _, er := range result.Employees {
		t := er.Simulation.Totals
		rows = append(rows, []string{
			er.Employee.Name,
			er.Employee.Department,
			FormatAmount(er.TargetWage),
			FormatAmount(t.TotalEmployerCost),
			FormatAmount(t.NetPay),
			FormatAmount(t.CorporateTaxSaving),
			FormatAmount(t.NetEmployerCost),
		})
	}
	sb.WriteString(renderTable(headers, rows, 2, false))
	sb.WriteString("\n")

	summary := strings.Join([]string{
		fmt.Sprintf("Toplam Yıllık İşveren Maliyeti: %s", FormatLira(result.TotalAnnualCost)),
		fmt.Sprintf("Kurumlar Vergisi Avantajı:      %s", FormatLira(result.TotalCorporateTaxSaving)),
		fmt.Sprintf("Vergi Sonrası Net Maliyet:      %s", FormatLira(result.TotalNetEmployerCost)),
	}, "\n")
	sb.WriteString(boxStyle.Render(summary))
	sb.WriteString("\n")

	if lines := Assumptions(result.Rates); len(lines) > 0 {
		sb.WriteString("\n")
		sb.WriteString(headerStyle.Render("VARSAYIMLAR"))
		sb.WriteString("\n")
		for _, l := range lines {
			sb.WriteString(mutedStyle.Render("  • " + l))
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}

func (c ConsoleFormatter) FormatPayslip(result *domain.EmployeeResult) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("AYLIK BORDRO: %s", result.Employee.Name)))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("Mod: %s  Ücret: %s", result.Simulation.Mode, FormatLira(result.Simulation.Wage))))
	sb.WriteString("\n\n")

	payslip := BuildPayslip(&result.Simulation)
	rows := make([][]string, 0, len(payslip))
	for _, r := range payslip {
		row := []string{r.Label}
		for _, v := range r.Values {
			if v == nil {
				row = append(row, "-")
				continue
			}
			row = append(row, FormatAmount(*v))
		}
		rows = append(rows, row)
	}
	sb.WriteString(renderTable(PayslipHeaders(), rows, 1, true))
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

// renderTable pads each column to its widest cell. Columns from firstNumeric
// on are right-aligned. With lastIsTotal the final row is highlighted.
func renderTable(headers []string, rows [][]string, firstNumeric int, lastIsTotal bool) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	render := func(style lipgloss.Style, cells []string) string {
		out := make([]string, len(cells))
		for i, cell := range cells {
			align := lipgloss.Left
			if i >= firstNumeric {
				align = lipgloss.Right
			}
			out[i] = style.Width(widths[i] + 2).Align(align).Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, out...)
	}

	lines := []string{render(headerStyle, headers)}
	lines = append(lines, mutedStyle.Render(strings.Repeat("─", lipgloss.Width(lines[0]))))
	for i, row := range rows {
		style := cellStyle
		if lastIsTotal && i == len(rows)-1 {
			style = totalStyle
		}
		lines = append(lines, render(style, row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

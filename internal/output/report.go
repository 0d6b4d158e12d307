package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rgehrsitz/bordro/internal/domain"
)

// Formatter renders a batch simulation
type Formatter interface {
	Name() string
	Format(result *domain.BatchResult) ([]byte, error)
}

// PayslipFormatter renders the monthly payslip of one employee
type PayslipFormatter interface {
	Name() string
	FormatPayslip(result *domain.EmployeeResult) ([]byte, error)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"table":   ConsoleFormatter{},
	"csv":     CSVSummarizer{},
	"json":    JSONFormatter{},
}

var payslipFormatters = map[string]PayslipFormatter{
	"console": ConsoleFormatter{},
	"table":   ConsoleFormatter{},
	"csv":     CSVPayslip{},
	"json":    JSONFormatter{},
	"pdf":     PDFPayslip{},
}

// GetFormatterByName returns the batch formatter for name, or nil
func GetFormatterByName(name string) Formatter {
	return formatters[strings.ToLower(name)]
}

// GetPayslipFormatterByName returns the payslip formatter for name, or nil
func GetPayslipFormatterByName(name string) PayslipFormatter {
	return payslipFormatters[strings.ToLower(name)]
}

// GenerateReport writes result to w in the named format
func GenerateReport(w io.Writer, result *domain.BatchResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}
	data, err := f.Format(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// GeneratePayslip writes one employee's payslip to w in the named format
func GeneratePayslip(w io.Writer, result *domain.EmployeeResult, format string) error {
	f := GetPayslipFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported payslip format: %s", format)
	}
	data, err := f.FormatPayslip(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted renders result and saves it under dir as
// bordro_report_<timestamp>.<ext>, returning the file path.
func WriteFormatted(dir string, f Formatter, result *domain.BatchResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	name := filepath.Join(dir, fmt.Sprintf("bordro_report_%s.%s", time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return name, nil
}

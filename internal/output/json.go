package output

import (
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/bordro/internal/domain"
)

// JSONFormatter emits indented JSON for batches and payslips
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.BatchResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func (j JSONFormatter) FormatPayslip(result *domain.EmployeeResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

package output

import (
	"fmt"

	"github.com/rgehrsitz/bordro/internal/domain"
)

// Assumptions lists the statutory figures a report was computed with
func Assumptions(spec domain.RateSpec) []string {
	if spec.Year == 0 {
		return nil
	}
	lines := []string{
		fmt.Sprintf("Asgari ücret (brüt / net): %s / %s", FormatLira(spec.MinimumGrossWage), FormatLira(spec.MinimumNetWage)),
		fmt.Sprintf("SGK taban / tavan: %s / %s", FormatLira(spec.SGKFloor), FormatLira(spec.SGKCeiling)),
		fmt.Sprintf("SGK işçi %s, işsizlik işçi %s", FormatPercentage(spec.WorkerSGKRate), FormatPercentage(spec.WorkerUnemploymentRate)),
		fmt.Sprintf("SGK işveren %s, işsizlik işveren %s", FormatPercentage(spec.EmployerSGKRate), FormatPercentage(spec.EmployerUnemploymentRate)),
		fmt.Sprintf("Damga vergisi: %s", FormatPercentage(spec.StampDutyRate)),
	}
	for _, b := range spec.Brackets {
		if b.Limit == nil {
			lines = append(lines, fmt.Sprintf("Gelir vergisi %s: üzeri", FormatPercentage(b.Rate)))
			continue
		}
		lines = append(lines, fmt.Sprintf("Gelir vergisi %s: %s'ye kadar", FormatPercentage(b.Rate), FormatLira(*b.Limit)))
	}
	return lines
}

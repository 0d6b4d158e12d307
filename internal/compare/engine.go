package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/bordro/internal/calculation"
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/rgehrsitz/bordro/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // template names, one alternative each
	Transforms []string // "name:k=v" specs, one alternative each
	InputPath  string
}

// Compare runs the base scenario and one alternative per template or
// transform against the same employee list
func (ce *CompareEngine) Compare(
	ctx context.Context,
	employees []domain.Employee,
	base *transform.Scenario,
	options CompareOptions,
) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}
	if len(options.Templates) == 0 && len(options.Transforms) == 0 {
		return nil, fmt.Errorf("%w: at least one template or transform is required", domain.ErrInvalidInput)
	}

	baseResult, err := ce.run(ctx, employees, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult.Description = "Current parameters"

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = template.Name

		alt, err := ce.alternative(ctx, employees, modified, baseResult)
		if err != nil {
			return nil, err
		}
		alt.Description = template.Description
		alternatives = append(alternatives, alt)
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, []transform.ScenarioTransform{tr})
		if err != nil {
			return nil, err
		}
		modified.Name = spec

		alt, err := ce.alternative(ctx, employees, modified, baseResult)
		if err != nil {
			return nil, err
		}
		alt.Description = tr.Description()
		alternatives = append(alternatives, alt)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		InputPath:          options.InputPath,
		Employees:          len(employees),
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) alternative(ctx context.Context, employees []domain.Employee, s *transform.Scenario, base ComparisonResult) (ComparisonResult, error) {
	result, err := ce.run(ctx, employees, s)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("failed to calculate scenario %s: %w", s.Name, err)
	}
	return ce.MetricsCalculator.CalculateComparison(result, base), nil
}

func (ce *CompareEngine) run(ctx context.Context, employees []domain.Employee, s *transform.Scenario) (ComparisonResult, error) {
	batch, err := ce.CalcEngine.WithRates(s.Rates).RunBatch(ctx, employees, s.Params)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(s.Name, batch), nil
}

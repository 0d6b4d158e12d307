package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func raiseTemplate(pct int64) Template {
	return Template{
		Name:        fmt.Sprintf("raise_%d", pct),
		Description: fmt.Sprintf("Raise every wage by %d%%", pct),
		Transforms: []ScenarioTransform{
			&SetRaise{Rate: decimal.NewFromInt(pct).Div(decimal.NewFromInt(100))},
		},
	}
}

// CreateBuiltInTemplates creates a template registry with the common
// raise and incentive what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, pct := range []int64{0, 25, 30, 40, 50} {
		registry.Register(raiseTemplate(pct))
	}

	registry.Register(Template{
		Name:        "manufacturing",
		Description: "Manufacturing employer SGK incentive (16.75%)",
		Transforms:  []ScenarioTransform{&SetIncentiveTier{Tier: domain.IncentiveManufacturing}},
	})
	registry.Register(Template{
		Name:        "non_manufacturing",
		Description: "Non-manufacturing employer SGK incentive (19.75%)",
		Transforms:  []ScenarioTransform{&SetIncentiveTier{Tier: domain.IncentiveNonManufacturing}},
	})
	registry.Register(Template{
		Name:        "standard",
		Description: "Standard employer SGK rate without incentive (21.75%)",
		Transforms:  []ScenarioTransform{&SetIncentiveTier{Tier: domain.IncentiveStandard}},
	})

	registry.Register(Template{
		Name:        "net_anchored",
		Description: "Hold the raised wage as net pay and solve the gross each month",
		Transforms:  []ScenarioTransform{&SetMode{Mode: domain.NetAnchored}},
	})
	registry.Register(Template{
		Name:        "gross_anchored",
		Description: "Hold the raised wage as gross pay",
		Transforms:  []ScenarioTransform{&SetMode{Mode: domain.GrossAnchored}},
	})

	registry.Register(Template{
		Name:        "manufacturing_raise_40",
		Description: "40% raise with the manufacturing incentive",
		Transforms: []ScenarioTransform{
			&SetRaise{Rate: decimal.RequireFromString("0.40")},
			&SetIncentiveTier{Tier: domain.IncentiveManufacturing},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *Scenario, template Template) (*Scenario, error) {
	if len(template.Transforms) == 0 {
		return base.Copy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Raises", "SGK Incentives", "Wage Anchor", "Combination Strategies"}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "raise_"):
			categories["Raises"] = append(categories["Raises"], template)
		case strings.HasSuffix(name, "_anchored"):
			categories["Wage Anchor"] = append(categories["Wage Anchor"], template)
		case len(template.Transforms) == 1:
			categories["SGK Incentives"] = append(categories["SGK Incentives"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-26s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  bordro compare personel.csv --with raise_25,raise_40\n")
	sb.WriteString("  bordro compare personel.csv --with manufacturing --transform set_raise:rate=0.35\n")

	return sb.String()
}

package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry maps transform names to factories so transforms can be
// built from CLI strings.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_raise", createSetRaise)
	registry.Register("adjust_raise", createAdjustRaise)
	registry.Register("set_incentive", createSetIncentiveTier)
	registry.Register("set_employer_sgk", createSetEmployerSGKRate)
	registry.Register("set_mode", createSetMode)
	registry.Register("set_corporate_tax", createSetCorporateTax)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_raise:rate=0.40"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func createSetRaise(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_raise", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetRaise{Rate: rate}, nil
}

func createAdjustRaise(params map[string]string) (ScenarioTransform, error) {
	delta, err := decimalParam("adjust_raise", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustRaise{Delta: delta}, nil
}

func createSetIncentiveTier(params map[string]string) (ScenarioTransform, error) {
	tier, ok := params["tier"]
	if !ok {
		return nil, fmt.Errorf("set_incentive requires 'tier' parameter")
	}
	return &SetIncentiveTier{Tier: domain.IncentiveTier(strings.ToLower(tier))}, nil
}

func createSetEmployerSGKRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_employer_sgk", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetEmployerSGKRate{Rate: rate}, nil
}

func createSetMode(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["mode"]
	if !ok {
		return nil, fmt.Errorf("set_mode requires 'mode' parameter")
	}
	mode, err := domain.ParseCalculationMode(raw)
	if err != nil {
		return nil, err
	}
	return &SetMode{Mode: mode}, nil
}

func createSetCorporateTax(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_corporate_tax", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetCorporateTax{Rate: rate}, nil
}

package transform

import (
	"fmt"

	"github.com/rgehrsitz/bordro/internal/domain"
)

// Scenario is one what-if configuration of a payroll run: the rate snapshot
// plus the run-wide parameters.
type Scenario struct {
	Name   string
	Rates  domain.RateConfig
	Params domain.SimulationParams
}

// Copy returns an independent copy. RateConfig is immutable, so a shallow
// copy is enough.
func (s *Scenario) Copy() *Scenario {
	c := *s
	return &c
}

// ScenarioTransform defines the interface for all scenario transformations.
// Transforms never modify their input.
type ScenarioTransform interface {
	// Apply returns a new scenario derived from base
	Apply(base *Scenario) (*Scenario, error)

	// Name returns a short identifier such as "set_raise"
	Name() string

	Description() string

	// Validate checks the transform parameters against base without applying
	Validate(base *Scenario) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one.
func ApplyTransforms(base *Scenario, transforms []ScenarioTransform) (*Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	current := base.Copy()
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

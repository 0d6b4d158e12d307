package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidWage is returned when a negative wage reaches the engine.
	ErrInvalidWage = errors.New("invalid wage")
	// ErrConfiguration is returned when a rate table fails validation.
	ErrConfiguration = errors.New("invalid rate configuration")
	// ErrInvalidInput covers month indices and cumulative bases outside their domain.
	ErrInvalidInput = errors.New("invalid input")
)

// WageError reports a wage the engine refuses to process
type WageError struct {
	Wage    decimal.Decimal
	Message string
}

func (e *WageError) Error() string {
	return fmt.Sprintf("%s: %s (got %s)", ErrInvalidWage, e.Message, e.Wage.String())
}

func (e *WageError) Unwrap() error {
	return ErrInvalidWage
}

// ConfigError describes which field of a rate table is malformed
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return ErrConfiguration.Error() + ": " + e.Message
	}
	return ErrConfiguration.Error() + ": " + e.Field + ": " + e.Message
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

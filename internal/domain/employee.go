package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Employee is one row of the personnel list
type Employee struct {
	Name        string          `yaml:"name" json:"name"`
	Department  string          `yaml:"department,omitempty" json:"department,omitempty"`
	CurrentWage decimal.Decimal `yaml:"wage" json:"wage"`
}

// SimulationParams are the run-wide knobs chosen by the user
type SimulationParams struct {
	Mode             CalculationMode `yaml:"mode" json:"mode"`
	RaiseRate        decimal.Decimal `yaml:"raise_rate" json:"raiseRate"`                 // e.g. 0.30 for a 30% raise
	CorporateTaxRate decimal.Decimal `yaml:"corporate_tax_rate" json:"corporateTaxRate"` // e.g. 0.25
}

// DefaultSimulationParams mirrors the defaults offered to users
func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		Mode:             GrossAnchored,
		RaiseRate:        decimal.RequireFromString("0.30"),
		CorporateTaxRate: decimal.RequireFromString("0.25"),
	}
}

// Validate checks the parameters are usable
func (p SimulationParams) Validate() error {
	if p.Mode != GrossAnchored && p.Mode != NetAnchored {
		return fmt.Errorf("%w: unknown calculation mode %q", ErrInvalidInput, p.Mode)
	}
	if p.RaiseRate.IsNegative() {
		return fmt.Errorf("%w: raise rate cannot be negative", ErrInvalidInput)
	}
	if p.CorporateTaxRate.IsNegative() || p.CorporateTaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: corporate tax rate must be within [0,1]", ErrInvalidInput)
	}
	return nil
}

// TargetWage applies the raise to the employee's current wage
func (p SimulationParams) TargetWage(current decimal.Decimal) decimal.Decimal {
	return current.Mul(decimal.NewFromInt(1).Add(p.RaiseRate))
}

// EmployeeResult is the annual simulation of one employee
type EmployeeResult struct {
	Employee   Employee         `json:"employee"`
	TargetWage decimal.Decimal  `json:"targetWage"`
	Simulation AnnualSimulation `json:"simulation"`
}

// BatchResult holds every employee simulated in one run plus the grand totals
type BatchResult struct {
	RunID                   string           `json:"runId"`
	Year                    int              `json:"year"`
	Params                  SimulationParams `json:"params"`
	IncentiveTier           IncentiveTier    `json:"incentiveTier,omitempty"`
	Rates                   RateSpec         `json:"rates"`
	Employees               []EmployeeResult `json:"employees"`
	TotalAnnualCost         decimal.Decimal  `json:"totalAnnualCost"`
	TotalCorporateTaxSaving decimal.Decimal  `json:"totalCorporateTaxSaving"`
	TotalNetEmployerCost    decimal.Decimal  `json:"totalNetEmployerCost"`
}

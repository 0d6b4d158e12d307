package transform

import (
	"fmt"

	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

func checkBase(name string, base *Scenario) error {
	if base == nil {
		return NewTransformError(name, "validate", "base scenario cannot be nil", nil)
	}
	return nil
}

// SetRaise replaces the raise applied to current wages
type SetRaise struct {
	Rate decimal.Decimal // 0.40 for a 40% raise
}

func (sr *SetRaise) Name() string { return "set_raise" }

func (sr *SetRaise) Description() string {
	return fmt.Sprintf("Raise wages by %s%%", sr.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0))
}

func (sr *SetRaise) Validate(base *Scenario) error {
	if sr.Rate.IsNegative() {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("raise must be non-negative, got %s", sr.Rate), nil)
	}
	return checkBase(sr.Name(), base)
}

func (sr *SetRaise) Apply(base *Scenario) (*Scenario, error) {
	modified := base.Copy()
	modified.Params.RaiseRate = sr.Rate
	return modified, nil
}

// AdjustRaise adds Delta to the current raise
type AdjustRaise struct {
	Delta decimal.Decimal
}

func (ar *AdjustRaise) Name() string { return "adjust_raise" }

func (ar *AdjustRaise) Description() string {
	sign := "+"
	if ar.Delta.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("Adjust raise by %s%s points", sign, ar.Delta.Mul(decimal.NewFromInt(100)).StringFixed(0))
}

func (ar *AdjustRaise) Validate(base *Scenario) error {
	if err := checkBase(ar.Name(), base); err != nil {
		return err
	}
	if base.Params.RaiseRate.Add(ar.Delta).IsNegative() {
		return NewTransformError(ar.Name(), "validate", "resulting raise would be negative", nil)
	}
	return nil
}

func (ar *AdjustRaise) Apply(base *Scenario) (*Scenario, error) {
	modified := base.Copy()
	modified.Params.RaiseRate = base.Params.RaiseRate.Add(ar.Delta)
	return modified, nil
}

// SetIncentiveTier switches the employer SGK incentive
type SetIncentiveTier struct {
	Tier domain.IncentiveTier
}

func (st *SetIncentiveTier) Name() string { return "set_incentive" }

func (st *SetIncentiveTier) Description() string {
	return fmt.Sprintf("Apply the %s employer SGK incentive", st.Tier)
}

func (st *SetIncentiveTier) Validate(base *Scenario) error {
	if _, ok := st.Tier.EmployerSGKRate(); !ok {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("unknown incentive tier %q", st.Tier), nil)
	}
	return checkBase(st.Name(), base)
}

func (st *SetIncentiveTier) Apply(base *Scenario) (*Scenario, error) {
	rc, err := base.Rates.WithIncentive(st.Tier)
	if err != nil {
		return nil, NewTransformError(st.Name(), "apply", "rates rejected", err)
	}
	modified := base.Copy()
	modified.Rates = rc
	return modified, nil
}

// SetEmployerSGKRate sets an explicit employer SGK rate, clearing any tier
type SetEmployerSGKRate struct {
	Rate decimal.Decimal
}

func (se *SetEmployerSGKRate) Name() string { return "set_employer_sgk" }

func (se *SetEmployerSGKRate) Description() string {
	return fmt.Sprintf("Employer SGK rate %s%%", se.Rate.Mul(decimal.NewFromInt(100)).StringFixed(2))
}

func (se *SetEmployerSGKRate) Validate(base *Scenario) error {
	if se.Rate.IsNegative() || se.Rate.GreaterThan(one) {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("rate must be within [0,1], got %s", se.Rate), nil)
	}
	return checkBase(se.Name(), base)
}

func (se *SetEmployerSGKRate) Apply(base *Scenario) (*Scenario, error) {
	rc, err := base.Rates.WithEmployerSGKRate(se.Rate)
	if err != nil {
		return nil, NewTransformError(se.Name(), "apply", "rates rejected", err)
	}
	modified := base.Copy()
	modified.Rates = rc
	return modified, nil
}

// SetMode switches between gross- and net-anchored wages
type SetMode struct {
	Mode domain.CalculationMode
}

func (sm *SetMode) Name() string { return "set_mode" }

func (sm *SetMode) Description() string {
	return fmt.Sprintf("Treat wages as %s", sm.Mode)
}

func (sm *SetMode) Validate(base *Scenario) error {
	if sm.Mode != domain.GrossAnchored && sm.Mode != domain.NetAnchored {
		return NewTransformError(sm.Name(), "validate", fmt.Sprintf("unknown mode %q", sm.Mode), domain.ErrInvalidInput)
	}
	return checkBase(sm.Name(), base)
}

func (sm *SetMode) Apply(base *Scenario) (*Scenario, error) {
	modified := base.Copy()
	modified.Params.Mode = sm.Mode
	return modified, nil
}

// SetCorporateTax changes the corporate tax rate used for the saving
type SetCorporateTax struct {
	Rate decimal.Decimal
}

func (sc *SetCorporateTax) Name() string { return "set_corporate_tax" }

func (sc *SetCorporateTax) Description() string {
	return fmt.Sprintf("Corporate tax %s%%", sc.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0))
}

func (sc *SetCorporateTax) Validate(base *Scenario) error {
	if sc.Rate.IsNegative() || sc.Rate.GreaterThan(one) {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("rate must be within [0,1], got %s", sc.Rate), nil)
	}
	return checkBase(sc.Name(), base)
}

func (sc *SetCorporateTax) Apply(base *Scenario) (*Scenario, error) {
	modified := base.Copy()
	modified.Params.CorporateTaxRate = sc.Rate
	return modified, nil
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IncentiveTier selects the employer SGK rate reduction the company qualifies for
type IncentiveTier string

const (
	IncentiveNone             IncentiveTier = ""
	IncentiveManufacturing    IncentiveTier = "manufacturing"     // 5 point reduction
	IncentiveNonManufacturing IncentiveTier = "non_manufacturing" // 2 point reduction
	IncentiveStandard         IncentiveTier = "standard"          // no reduction
)

var incentiveEmployerSGKRates = map[IncentiveTier]decimal.Decimal{
	IncentiveManufacturing:    decimal.RequireFromString("0.1675"),
	IncentiveNonManufacturing: decimal.RequireFromString("0.1975"),
	IncentiveStandard:         decimal.RequireFromString("0.2175"),
}

// IncentiveTiers lists the supported tiers in display order
func IncentiveTiers() []IncentiveTier {
	return []IncentiveTier{IncentiveManufacturing, IncentiveNonManufacturing, IncentiveStandard}
}

// EmployerSGKRate returns the employer SGK share for the tier
func (t IncentiveTier) EmployerSGKRate() (decimal.Decimal, bool) {
	rate, ok := incentiveEmployerSGKRates[t]
	return rate, ok
}

// BracketSpec is the serialized form of a tax bracket. A nil Limit marks the
// open-ended top bracket.
type BracketSpec struct {
	Limit *decimal.Decimal `yaml:"limit,omitempty" toml:"limit,omitempty" json:"limit,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" toml:"rate" json:"rate"`
}

// RateSpec is the raw, unvalidated rate table as read from a file or request.
// It only becomes usable once converted with NewRateConfig.
type RateSpec struct {
	Year                     int             `yaml:"year" toml:"year" json:"year"`
	MinimumGrossWage         decimal.Decimal `yaml:"minimum_gross_wage" toml:"minimum_gross_wage" json:"minimumGrossWage"`
	MinimumNetWage           decimal.Decimal `yaml:"minimum_net_wage" toml:"minimum_net_wage" json:"minimumNetWage"`
	SGKFloor                 decimal.Decimal `yaml:"sgk_floor" toml:"sgk_floor" json:"sgkFloor"`
	SGKCeiling               decimal.Decimal `yaml:"sgk_ceiling" toml:"sgk_ceiling" json:"sgkCeiling"`
	WorkerSGKRate            decimal.Decimal `yaml:"worker_sgk_rate" toml:"worker_sgk_rate" json:"workerSgkRate"`
	WorkerUnemploymentRate   decimal.Decimal `yaml:"worker_unemployment_rate" toml:"worker_unemployment_rate" json:"workerUnemploymentRate"`
	EmployerSGKRate          decimal.Decimal `yaml:"employer_sgk_rate" toml:"employer_sgk_rate" json:"employerSgkRate"`
	EmployerUnemploymentRate decimal.Decimal `yaml:"employer_unemployment_rate" toml:"employer_unemployment_rate" json:"employerUnemploymentRate"`
	StampDutyRate            decimal.Decimal `yaml:"stamp_duty_rate" toml:"stamp_duty_rate" json:"stampDutyRate"`
	IncentiveTier            IncentiveTier   `yaml:"incentive_tier,omitempty" toml:"incentive_tier,omitempty" json:"incentiveTier,omitempty"`
	Brackets                 []BracketSpec   `yaml:"income_tax_brackets" toml:"income_tax_brackets" json:"incomeTaxBrackets"`
}

// TaxBracket is one validated step of the progressive income tax table
type TaxBracket struct {
	Limit     decimal.Decimal // upper bound, meaningless when Unbounded
	Unbounded bool
	Rate      decimal.Decimal
}

// Covers reports whether amount v lies at or below the bracket's upper bound
func (b TaxBracket) Covers(v decimal.Decimal) bool {
	return b.Unbounded || v.LessThanOrEqual(b.Limit)
}

// RateConfig is an immutable snapshot of the statutory payroll parameters.
// Build one with NewRateConfig; derive variants with the With* methods.
type RateConfig struct {
	year                     int
	minimumGrossWage         decimal.Decimal
	minimumNetWage           decimal.Decimal
	sgkFloor                 decimal.Decimal
	sgkCeiling               decimal.Decimal
	workerSGKRate            decimal.Decimal
	workerUnemploymentRate   decimal.Decimal
	employerSGKRate          decimal.Decimal
	employerUnemploymentRate decimal.Decimal
	stampDutyRate            decimal.Decimal
	incentiveTier            IncentiveTier
	brackets                 []TaxBracket
}

// NewRateConfig validates spec and returns the snapshot. A non-empty
// IncentiveTier overrides spec.EmployerSGKRate.
func NewRateConfig(spec RateSpec) (RateConfig, error) {
	if !spec.MinimumGrossWage.IsPositive() {
		return RateConfig{}, &ConfigError{Field: "minimum_gross_wage", Message: "must be positive"}
	}
	if spec.MinimumNetWage.IsNegative() {
		return RateConfig{}, &ConfigError{Field: "minimum_net_wage", Message: "cannot be negative"}
	}
	if spec.SGKFloor.IsNegative() {
		return RateConfig{}, &ConfigError{Field: "sgk_floor", Message: "cannot be negative"}
	}
	if !spec.SGKCeiling.IsPositive() || spec.SGKCeiling.LessThan(spec.SGKFloor) {
		return RateConfig{}, &ConfigError{Field: "sgk_ceiling", Message: "must be positive and not below sgk_floor"}
	}

	employerSGK := spec.EmployerSGKRate
	if spec.IncentiveTier != IncentiveNone {
		rate, ok := spec.IncentiveTier.EmployerSGKRate()
		if !ok {
			return RateConfig{}, &ConfigError{Field: "incentive_tier", Message: fmt.Sprintf("unknown tier %q", spec.IncentiveTier)}
		}
		employerSGK = rate
	}

	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"worker_sgk_rate", spec.WorkerSGKRate},
		{"worker_unemployment_rate", spec.WorkerUnemploymentRate},
		{"employer_sgk_rate", employerSGK},
		{"employer_unemployment_rate", spec.EmployerUnemploymentRate},
		{"stamp_duty_rate", spec.StampDutyRate},
	}
	for _, r := range rates {
		if !isFraction(r.value) {
			return RateConfig{}, &ConfigError{Field: r.field, Message: fmt.Sprintf("rate %s outside [0,1]", r.value)}
		}
	}

	brackets, err := validateBrackets(spec.Brackets)
	if err != nil {
		return RateConfig{}, err
	}

	return RateConfig{
		year:                     spec.Year,
		minimumGrossWage:         spec.MinimumGrossWage,
		minimumNetWage:           spec.MinimumNetWage,
		sgkFloor:                 spec.SGKFloor,
		sgkCeiling:               spec.SGKCeiling,
		workerSGKRate:            spec.WorkerSGKRate,
		workerUnemploymentRate:   spec.WorkerUnemploymentRate,
		employerSGKRate:          employerSGK,
		employerUnemploymentRate: spec.EmployerUnemploymentRate,
		stampDutyRate:            spec.StampDutyRate,
		incentiveTier:            spec.IncentiveTier,
		brackets:                 brackets,
	}, nil
}

func validateBrackets(specs []BracketSpec) ([]TaxBracket, error) {
	if len(specs) == 0 {
		return nil, &ConfigError{Field: "income_tax_brackets", Message: "at least one bracket is required"}
	}

	brackets := make([]TaxBracket, 0, len(specs))
	lower := decimal.Zero
	for i, s := range specs {
		field := fmt.Sprintf("income_tax_brackets[%d]", i)
		if !isFraction(s.Rate) {
			return nil, &ConfigError{Field: field, Message: fmt.Sprintf("rate %s outside [0,1]", s.Rate)}
		}
		last := i == len(specs)-1
		if s.Limit == nil {
			if !last {
				return nil, &ConfigError{Field: field, Message: "only the last bracket may be unbounded"}
			}
			brackets = append(brackets, TaxBracket{Unbounded: true, Rate: s.Rate})
			continue
		}
		if last {
			return nil, &ConfigError{Field: field, Message: "last bracket must be unbounded"}
		}
		if s.Limit.LessThanOrEqual(lower) {
			return nil, &ConfigError{Field: field, Message: fmt.Sprintf("limit %s must exceed previous limit %s", s.Limit, lower)}
		}
		brackets = append(brackets, TaxBracket{Limit: *s.Limit, Rate: s.Rate})
		lower = *s.Limit
	}
	return brackets, nil
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}

func (rc RateConfig) Year() int                                 { return rc.year }
func (rc RateConfig) MinimumGrossWage() decimal.Decimal         { return rc.minimumGrossWage }
func (rc RateConfig) MinimumNetWage() decimal.Decimal           { return rc.minimumNetWage }
func (rc RateConfig) SGKFloor() decimal.Decimal                 { return rc.sgkFloor }
func (rc RateConfig) SGKCeiling() decimal.Decimal               { return rc.sgkCeiling }
func (rc RateConfig) WorkerSGKRate() decimal.Decimal            { return rc.workerSGKRate }
func (rc RateConfig) WorkerUnemploymentRate() decimal.Decimal   { return rc.workerUnemploymentRate }
func (rc RateConfig) EmployerSGKRate() decimal.Decimal          { return rc.employerSGKRate }
func (rc RateConfig) EmployerUnemploymentRate() decimal.Decimal { return rc.employerUnemploymentRate }
func (rc RateConfig) StampDutyRate() decimal.Decimal            { return rc.stampDutyRate }
func (rc RateConfig) IncentiveTier() IncentiveTier              { return rc.incentiveTier }

// IsZero reports whether rc was never built through NewRateConfig
func (rc RateConfig) IsZero() bool {
	return len(rc.brackets) == 0
}

// Brackets returns a copy of the bracket table
func (rc RateConfig) Brackets() []TaxBracket {
	out := make([]TaxBracket, len(rc.brackets))
	copy(out, rc.brackets)
	return out
}

// EmployerContributionRate is the combined employer SGK and unemployment share
func (rc RateConfig) EmployerContributionRate() decimal.Decimal {
	return rc.employerSGKRate.Add(rc.employerUnemploymentRate)
}

// Spec converts the snapshot back to its serializable form
func (rc RateConfig) Spec() RateSpec {
	specs := make([]BracketSpec, len(rc.brackets))
	for i, b := range rc.brackets {
		specs[i].Rate = b.Rate
		if !b.Unbounded {
			limit := b.Limit
			specs[i].Limit = &limit
		}
	}
	return RateSpec{
		Year:                     rc.year,
		MinimumGrossWage:         rc.minimumGrossWage,
		MinimumNetWage:           rc.minimumNetWage,
		SGKFloor:                 rc.sgkFloor,
		SGKCeiling:               rc.sgkCeiling,
		WorkerSGKRate:            rc.workerSGKRate,
		WorkerUnemploymentRate:   rc.workerUnemploymentRate,
		EmployerSGKRate:          rc.employerSGKRate,
		EmployerUnemploymentRate: rc.employerUnemploymentRate,
		StampDutyRate:            rc.stampDutyRate,
		IncentiveTier:            rc.incentiveTier,
		Brackets:                 specs,
	}
}

// WithIncentive returns a new snapshot using the tier's employer SGK rate.
// The receiver is left untouched.
func (rc RateConfig) WithIncentive(tier IncentiveTier) (RateConfig, error) {
	spec := rc.Spec()
	spec.IncentiveTier = tier
	return NewRateConfig(spec)
}

// WithEmployerSGKRate returns a new snapshot with an explicit employer SGK rate
// and no incentive tier.
func (rc RateConfig) WithEmployerSGKRate(rate decimal.Decimal) (RateConfig, error) {
	spec := rc.Spec()
	spec.IncentiveTier = IncentiveNone
	spec.EmployerSGKRate = rate
	return NewRateConfig(spec)
}

// WorkerSideEqual reports whether both snapshots agree on every parameter the
// minimum wage exemption schedule depends on.
func (rc RateConfig) WorkerSideEqual(other RateConfig) bool {
	if !rc.minimumGrossWage.Equal(other.minimumGrossWage) ||
		!rc.sgkFloor.Equal(other.sgkFloor) ||
		!rc.sgkCeiling.Equal(other.sgkCeiling) ||
		!rc.workerSGKRate.Equal(other.workerSGKRate) ||
		!rc.workerUnemploymentRate.Equal(other.workerUnemploymentRate) ||
		!rc.stampDutyRate.Equal(other.stampDutyRate) ||
		len(rc.brackets) != len(other.brackets) {
		return false
	}
	for i, b := range rc.brackets {
		o := other.brackets[i]
		if b.Unbounded != o.Unbounded || !b.Rate.Equal(o.Rate) || (!b.Unbounded && !b.Limit.Equal(o.Limit)) {
			return false
		}
	}
	return true
}

// DefaultRateSpec2026 returns the 2026 projection of the Turkish payroll parameters
func DefaultRateSpec2026() RateSpec {
	limit := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	return RateSpec{
		Year:                     2026,
		MinimumGrossWage:         decimal.RequireFromString("33030.00"),
		MinimumNetWage:           decimal.RequireFromString("28075.50"),
		SGKFloor:                 decimal.RequireFromString("33030.00"),
		SGKCeiling:               decimal.RequireFromString("297270.00"),
		WorkerSGKRate:            decimal.RequireFromString("0.14"),
		WorkerUnemploymentRate:   decimal.RequireFromString("0.01"),
		EmployerSGKRate:          decimal.RequireFromString("0.2175"),
		EmployerUnemploymentRate: decimal.RequireFromString("0.02"),
		StampDutyRate:            decimal.RequireFromString("0.00759"),
		Brackets: []BracketSpec{
			{Limit: limit(190000), Rate: decimal.RequireFromString("0.15")},
			{Limit: limit(400000), Rate: decimal.RequireFromString("0.20")},
			{Limit: limit(1500000), Rate: decimal.RequireFromString("0.27")},
			{Limit: limit(5300000), Rate: decimal.RequireFromString("0.35")},
			{Rate: decimal.RequireFromString("0.40")},
		},
	}
}

// DefaultRates2026 returns the validated 2026 snapshot without incentive
func DefaultRates2026() RateConfig {
	rc, err := NewRateConfig(DefaultRateSpec2026())
	if err != nil {
		panic(fmt.Sprintf("built-in 2026 rates are invalid: %v", err))
	}
	return rc
}

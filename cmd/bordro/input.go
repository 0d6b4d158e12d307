package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rgehrsitz/bordro/internal/calculation"
	"github.com/rgehrsitz/bordro/internal/config"
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/rgehrsitz/bordro/internal/roster"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// addRateFlags registers the flags that select the rate table
func addRateFlags(cmd *cobra.Command) {
	cmd.Flags().String("rates", "", "Rate table file (.yaml or .toml); built-in 2026 rates when empty")
	cmd.Flags().String("tier", "", "Employer SGK incentive tier ("+tierNames()+")")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}

// addInputFlags registers the flags shared by commands that read a personnel list
func addInputFlags(cmd *cobra.Command) {
	addRateFlags(cmd)
	cmd.Flags().StringP("mode", "m", "gross", "Wage anchor: gross (brüt) or net")
	cmd.Flags().String("raise", "0.30", "Raise applied to current wages (0.30 = 30%)")
	cmd.Flags().String("corporate-tax", "0.25", "Corporate tax rate used for the tax saving")
	cmd.Flags().String("wage-column", "", "CSV wage column (auto-detected when empty)")
	cmd.Flags().String("name-column", "", "CSV name column (auto-detected when empty)")
	cmd.Flags().String("department-column", "", "CSV department column (auto-detected when empty)")
	cmd.Flags().Int("workers", 0, "Parallel workers for batch runs (0 = GOMAXPROCS)")
}

func tierNames() string {
	names := make([]string, 0, len(domain.IncentiveTiers()))
	for _, t := range domain.IncentiveTiers() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func parseTier(raw string) (domain.IncentiveTier, error) {
	tier := domain.IncentiveTier(strings.ToLower(strings.TrimSpace(raw)))
	if slices.Contains(domain.IncentiveTiers(), tier) {
		return tier, nil
	}
	return "", fmt.Errorf("%w: unknown incentive tier %q (valid: %s)", domain.ErrInvalidInput, raw, tierNames())
}

// loadRates resolves --rates and --tier
func loadRates(cmd *cobra.Command, base *domain.RateConfig) (domain.RateConfig, error) {
	ratesFile, _ := cmd.Flags().GetString("rates")
	tier, _ := cmd.Flags().GetString("tier")

	var rc domain.RateConfig
	var err error
	switch {
	case ratesFile != "":
		rc, err = config.NewInputParser().LoadRates(ratesFile)
	case base != nil && !base.IsZero():
		rc = *base
	default:
		rc = domain.DefaultRates2026()
	}
	if err != nil {
		return rc, err
	}
	if tier != "" {
		t, err := parseTier(tier)
		if err != nil {
			return rc, err
		}
		return rc.WithIncentive(t)
	}
	return rc, nil
}

// newEngine builds a calculation engine wired to the CLI logger
func newEngine(cmd *cobra.Command, rc domain.RateConfig) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine(rc)
	debugMode, _ := cmd.Flags().GetBool("debug")
	engine.SetLogger(newSlogLogger(cmd.ErrOrStderr(), debugMode))
	if cmd.Flags().Lookup("workers") != nil {
		engine.Workers, _ = cmd.Flags().GetInt("workers")
	}
	return engine
}

// loadSimulation reads a CSV personnel list or a YAML simulation file and
// applies the command-line overrides.
func loadSimulation(cmd *cobra.Command, path string) (*config.Simulation, error) {
	parser := config.NewInputParser()

	var sim *config.Simulation
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		wageCol, _ := cmd.Flags().GetString("wage-column")
		nameCol, _ := cmd.Flags().GetString("name-column")
		deptCol, _ := cmd.Flags().GetString("department-column")

		result, err := roster.ReadFile(path, roster.Options{
			Columns: roster.Columns{Wage: wageCol, Name: nameCol, Department: deptCol},
		})
		if err != nil {
			return nil, err
		}
		for _, s := range result.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping line %d: %s\n", s.Line, s.Reason)
		}
		sim, err = parser.BuildSimulation(&config.SimulationFile{Employees: result.Employees})
		if err != nil {
			return nil, err
		}
	default:
		var err error
		if sim, err = parser.LoadSimulation(path); err != nil {
			return nil, err
		}
	}

	rc, err := loadRates(cmd, &sim.Rates)
	if err != nil {
		return nil, err
	}
	sim.Rates = rc

	if cmd.Flags().Changed("mode") {
		raw, _ := cmd.Flags().GetString("mode")
		if sim.Params.Mode, err = domain.ParseCalculationMode(raw); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("raise") {
		if sim.Params.RaiseRate, err = rateFlag(cmd, "raise"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("corporate-tax") {
		if sim.Params.CorporateTaxRate, err = rateFlag(cmd, "corporate-tax"); err != nil {
			return nil, err
		}
	}
	return sim, sim.Params.Validate()
}

// rateFlag parses a fraction such as 0.30. Rates are never written with
// thousands separators, so the locale-aware amount parser is not used.
func rateFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: cannot parse rate %q", name, raw)
	}
	return d, nil
}

// decimalFlag parses a lira amount, accepting Turkish formatting (100.000,50)
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := roster.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

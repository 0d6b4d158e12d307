package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/bordro/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SimulationFile is the on-disk layout of a simulation input
type SimulationFile struct {
	Rates     *domain.RateSpec  `yaml:"rates,omitempty"`
	Params    ParamsFile        `yaml:"params"`
	Employees []domain.Employee `yaml:"employees"`
}

// ParamsFile is the raw form of domain.SimulationParams; the mode is kept as
// text so Turkish spellings are accepted.
type ParamsFile struct {
	Mode             string           `yaml:"mode"`
	RaiseRate        *decimal.Decimal `yaml:"raise_rate"`
	CorporateTaxRate *decimal.Decimal `yaml:"corporate_tax_rate"`
}

// Simulation is a validated, ready-to-run input
type Simulation struct {
	Rates     domain.RateConfig
	Params    domain.SimulationParams
	Employees []domain.Employee
}

// InputParser handles parsing of rate tables and simulation files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRates loads a rate table from a YAML or TOML file, chosen by extension
func (ip *InputParser) LoadRates(filename string) (domain.RateConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.RateConfig{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var spec domain.RateSpec
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &spec); err != nil {
			return domain.RateConfig{}, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return domain.RateConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return domain.RateConfig{}, fmt.Errorf("unsupported rate file format: %s", filepath.Ext(filename))
	}

	rc, err := domain.NewRateConfig(spec)
	if err != nil {
		return domain.RateConfig{}, fmt.Errorf("rate file %s: %w", filename, err)
	}
	return rc, nil
}

// LoadRatesOrDefault loads filename, or returns the built-in 2026 rates when
// filename is empty.
func (ip *InputParser) LoadRatesOrDefault(filename string) (domain.RateConfig, error) {
	if filename == "" {
		return domain.DefaultRates2026(), nil
	}
	return ip.LoadRates(filename)
}

// LoadSimulation loads a YAML simulation file. Rates embedded in the file are
// used when present, otherwise the built-in defaults.
func (ip *InputParser) LoadSimulation(filename string) (*Simulation, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file SimulationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	sim, err := ip.BuildSimulation(&file)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return sim, nil
}

// LoadSimulationWithRates loads a simulation file and replaces its rates with
// those from a separate rate file.
func (ip *InputParser) LoadSimulationWithRates(simulationFile, ratesFile string) (*Simulation, error) {
	sim, err := ip.LoadSimulation(simulationFile)
	if err != nil {
		return nil, err
	}
	rc, err := ip.LoadRates(ratesFile)
	if err != nil {
		return nil, err
	}
	sim.Rates = rc
	return sim, nil
}

// BuildSimulation validates a decoded file
func (ip *InputParser) BuildSimulation(file *SimulationFile) (*Simulation, error) {
	rc := domain.DefaultRates2026()
	if file.Rates != nil {
		var err error
		if rc, err = domain.NewRateConfig(*file.Rates); err != nil {
			return nil, err
		}
	}

	params, err := ip.buildParams(file.Params)
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}

	if len(file.Employees) == 0 {
		return nil, fmt.Errorf("no employees provided")
	}
	employees := make([]domain.Employee, len(file.Employees))
	for i, emp := range file.Employees {
		if err := ip.validateEmployee(&emp); err != nil {
			return nil, fmt.Errorf("employee %d validation failed: %w", i, err)
		}
		if emp.Name == "" {
			emp.Name = fmt.Sprintf("Personel %d", i+1)
		}
		employees[i] = emp
	}

	return &Simulation{Rates: rc, Params: params, Employees: employees}, nil
}

func (ip *InputParser) buildParams(raw ParamsFile) (domain.SimulationParams, error) {
	params := domain.DefaultSimulationParams()

	mode, err := domain.ParseCalculationMode(raw.Mode)
	if err != nil {
		return params, err
	}
	params.Mode = mode
	if raw.RaiseRate != nil {
		params.RaiseRate = *raw.RaiseRate
	}
	if raw.CorporateTaxRate != nil {
		params.CorporateTaxRate = *raw.CorporateTaxRate
	}
	return params, params.Validate()
}

// validateEmployee validates a single employee
func (ip *InputParser) validateEmployee(emp *domain.Employee) error {
	if emp.CurrentWage.IsNegative() {
		return fmt.Errorf("%w: wage cannot be negative", domain.ErrInvalidWage)
	}
	return nil
}

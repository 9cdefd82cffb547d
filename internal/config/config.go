// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the scenarios file.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/consortium-simulator/pkg/alternatives"
	"github.com/iwvelando/consortium-simulator/pkg/constants"
	"github.com/iwvelando/consortium-simulator/pkg/datetime"
	"github.com/iwvelando/consortium-simulator/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for consortium-sim.
type Configuration struct {
	Alternatives alternatives.Rates `yaml:"alternatives,omitempty"`
	Scenarios    []Scenario
	Logging      LoggingConfig `yaml:"logging,omitempty"`
	Output       OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.Alternatives = configuration.Alternatives.WithDefaults()
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Scenarios whose inputs cannot be converted are reported
// here too; the runner rejects them.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	if len(c.Scenarios) == 0 {
		warnings = append(warnings, "configuration has no scenarios")
	}

	seen := make(map[string]bool, len(c.Scenarios))
	var scenarios []validation.ScenarioConfig
	for _, scenario := range c.Scenarios {
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}
		seen[scenario.Name] = true

		info := validation.ScenarioConfig{Name: scenario.Name, Active: scenario.Active}
		switch scenario.ScenarioKind() {
		case KindSimulation:
			in, err := scenario.SimulationInput()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s': %v", scenario.Name, err))
				continue
			}
			info.Simulation = &in
		case KindConstruction:
			in, err := scenario.ConstructionInput()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s': %v", scenario.Name, err))
				continue
			}
			info.Construction = &in
		case KindComparison:
			if _, err := scenario.ComparisonInput(c.Alternatives); err != nil {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s': %v", scenario.Name, err))
			}
			if scenario.Schedule && scenario.StartDate != "" {
				if err := datetime.ValidateDate(scenario.StartDate); err != nil {
					warnings = append(warnings, fmt.Sprintf("Scenario '%s': invalid startDate: %v", scenario.Name, err))
				}
			}
			continue
		default:
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has unknown kind '%s'", scenario.Name, scenario.Kind))
			continue
		}
		scenarios = append(scenarios, info)
	}

	validator := validation.ConfigValidator{Scenarios: scenarios}
	return append(warnings, validator.ValidateAll()...)
}

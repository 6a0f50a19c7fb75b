// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/hypotools/amortize/pkg/constants"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for amortize.
type Configuration struct {
	Loans   []Loan
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
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
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader parses a YAML-formatted configuration from r,
// e.g. an uploaded request body.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard input errors surface later when the value types are
// constructed; warnings cover configurations that are legal but suspicious.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	seen := make(map[string]bool)
	for _, l := range conf.Loans {
		if l.Name == "" {
			warnings = append(warnings, "a loan has no name; output rows will be hard to tell apart")
		}
		if seen[l.Name] {
			warnings = append(warnings, fmt.Sprintf("duplicate loan name '%s'", l.Name))
		}
		seen[l.Name] = true

		if l.StartDate != "" {
			if _, err := time.Parse(DateTimeLayout, l.StartDate); err != nil {
				warnings = append(warnings, fmt.Sprintf("loan '%s' has unparsable startDate '%s'; payment rows will be numbered instead of dated",
					l.Name, l.StartDate))
			}
		}

		// A payment barely above the first month's interest is legal but will
		// take far longer than the stated term to amortize.
		firstInterest := l.Principal * l.AnnualRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
		if l.MonthlyPayment > firstInterest && l.MonthlyPayment < firstInterest+1 {
			warnings = append(warnings, fmt.Sprintf("loan '%s' monthly payment %.2f barely covers first-month interest %.2f; payoff will be very slow",
				l.Name, l.MonthlyPayment, firstInterest))
		}
	}

	return warnings
}

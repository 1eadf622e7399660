// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/loan-amortizer/pkg/amortization"
	"github.com/iwvelando/loan-amortizer/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a loan-amortizer run.
type Configuration struct {
	Loan          LoanConfig           `yaml:"loan"`
	ExtraPayments []ExtraPaymentConfig `yaml:"extraPayments,omitempty"`
	Edit          *EditConfig          `yaml:"edit,omitempty"`
	Logging       LoggingConfig        `yaml:"logging,omitempty"`
	Output        OutputConfig         `yaml:"output,omitempty"`
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
	View   string `yaml:"view,omitempty"`   // monthly, yearly
}

// LoanConfig is the loan as written in the config file. Empty frequencies and
// term unit fall back to monthly payments, monthly compounding and years.
type LoanConfig struct {
	Principal            float64 `yaml:"principal"`
	AnnualRatePercent    float64 `yaml:"annualRatePercent"`
	TermLength           int     `yaml:"termLength"`
	TermUnit             string  `yaml:"termUnit,omitempty"`
	StartDate            string  `yaml:"startDate"`
	CompoundingFrequency string  `yaml:"compoundingFrequency,omitempty"`
	PaymentFrequency     string  `yaml:"paymentFrequency,omitempty"`
}

// ExtraPaymentConfig is a named extra principal payment.
type ExtraPaymentConfig struct {
	Name          string  `yaml:"name,omitempty"`
	PaymentNumber int     `yaml:"paymentNumber"`
	Amount        float64 `yaml:"amount"`
	Recurring     bool    `yaml:"recurring,omitempty"`
}

// EditConfig overrides the amount of a single scheduled payment.
type EditConfig struct {
	PaymentNumber int     `yaml:"paymentNumber"`
	Amount        float64 `yaml:"amount"`
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

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r,
// for uploads that never touch the filesystem.
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
// returns warnings. Hard errors are left to ToLoanInput and the engine.
func (c *Configuration) ValidateConfiguration() []string {
	loan, err := c.ToLoanInput()
	if err != nil {
		return nil
	}
	n, err := amortization.NumberOfPayments(loan)
	if err != nil {
		return nil
	}
	rate, err := amortization.PeriodicRate(loan)
	if err != nil {
		return nil
	}

	validator := &validation.PlanValidator{
		TotalPayments:    n,
		ScheduledPayment: amortization.LevelPayment(loan.Principal, rate, n).InexactFloat64(),
	}
	for i, extra := range c.ExtraPayments {
		name := extra.Name
		if name == "" {
			name = fmt.Sprintf("extra payment %d", i+1)
		}
		validator.ExtraPayments = append(validator.ExtraPayments, validation.ExtraPaymentConfig{
			Name:          name,
			PaymentNumber: extra.PaymentNumber,
			Recurring:     extra.Recurring,
		})
	}
	if c.Edit != nil {
		validator.Edit = &validation.EditConfig{
			PaymentNumber: c.Edit.PaymentNumber,
			Amount:        c.Edit.Amount,
		}
	}

	return validator.ValidateAll()
}

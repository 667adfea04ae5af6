// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/clachance14/CostTrak-sub001/pkg/constants"
)

// Configuration holds all configuration for the forecasting engine.
type Configuration struct {
	Estimation EstimationConfig `yaml:"estimation,omitempty"`
	PerDiem    PerDiemConfig    `yaml:"perDiem,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
}

// EstimationConfig centralizes every estimation tunable the calculators
// consume. Each field has exactly one default in pkg/constants; nothing in
// the calculation packages hardcodes these values.
type EstimationConfig struct {
	// BurdenRate is the employer-side loading applied to straight-time wages.
	BurdenRate float64 `yaml:"burdenRate,omitempty"`
	// OvertimeMultiplier is the pay multiplier for overtime hours.
	OvertimeMultiplier float64 `yaml:"overtimeMultiplier,omitempty"`
	// FallbackLaborRate is the hourly rate of last resort for crafts with
	// no running-average rate and no default rate.
	FallbackLaborRate float64 `yaml:"fallbackLaborRate,omitempty"`
	// DefaultWeeklyHours is assumed for forecast rows without explicit hours.
	DefaultWeeklyHours float64 `yaml:"defaultWeeklyHours,omitempty"`
	// CompositeRateWeeklyHours is the assumed week when converting
	// headcount to hours for composite-rate projection.
	CompositeRateWeeklyHours float64 `yaml:"compositeRateWeeklyHours,omitempty"`
	// SpendThreshold is the committed/revised-contract ratio at which the
	// category forecast switches from margin-based to committed-based.
	SpendThreshold float64 `yaml:"spendThreshold,omitempty"`
}

// PerDiemConfig holds the engine-side per-diem validation tunables.
type PerDiemConfig struct {
	// DailyRateCap is the per-day rate above which validation warns.
	DailyRateCap float64 `yaml:"dailyRateCap,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Every estimation tunable falls back to its
// pkg/constants default, so an empty file yields a fully usable engine.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Default returns a Configuration carrying only the pkg/constants defaults,
// for library callers that never touch a config file.
func Default() *Configuration {
	return &Configuration{
		Estimation: EstimationConfig{
			BurdenRate:               constants.DefaultBurdenRate,
			OvertimeMultiplier:       constants.DefaultOvertimeMultiplier,
			FallbackLaborRate:        constants.DefaultFallbackLaborRate,
			DefaultWeeklyHours:       constants.DefaultWeeklyHours,
			CompositeRateWeeklyHours: constants.DefaultCompositeRateWeeklyHours,
			SpendThreshold:           constants.DefaultSpendThreshold,
		},
		PerDiem: PerDiemConfig{
			DailyRateCap: constants.DefaultPerDiemRateCap,
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("estimation.burdenRate", constants.DefaultBurdenRate)
	v.SetDefault("estimation.overtimeMultiplier", constants.DefaultOvertimeMultiplier)
	v.SetDefault("estimation.fallbackLaborRate", constants.DefaultFallbackLaborRate)
	v.SetDefault("estimation.defaultWeeklyHours", constants.DefaultWeeklyHours)
	v.SetDefault("estimation.compositeRateWeeklyHours", constants.DefaultCompositeRateWeeklyHours)
	v.SetDefault("estimation.spendThreshold", constants.DefaultSpendThreshold)
	v.SetDefault("perDiem.dailyRateCap", constants.DefaultPerDiemRateCap)
	v.SetDefault("output.format", constants.OutputFormatPretty)
}

// Validate performs general validation of the configuration and returns
// warnings for suspicious but workable values. It never fails: a warning
// configuration still runs.
func (c *Configuration) Validate() []string {
	var warnings []string
	e := c.Estimation

	if e.BurdenRate < 0 || e.BurdenRate > 1 {
		warnings = append(warnings, fmt.Sprintf("burden rate %.2f is outside [0, 1]", e.BurdenRate))
	}
	if e.SpendThreshold <= 0 || e.SpendThreshold >= 1 {
		warnings = append(warnings, fmt.Sprintf("spend threshold %.2f is outside (0, 1)", e.SpendThreshold))
	}
	if e.FallbackLaborRate <= 0 {
		warnings = append(warnings, fmt.Sprintf("fallback labor rate %.2f is not positive", e.FallbackLaborRate))
	}
	if e.DefaultWeeklyHours <= 0 || e.DefaultWeeklyHours > 168 {
		warnings = append(warnings, fmt.Sprintf("default weekly hours %.1f is outside (0, 168]", e.DefaultWeeklyHours))
	}
	if e.OvertimeMultiplier < 1 {
		warnings = append(warnings, fmt.Sprintf("overtime multiplier %.2f is below straight time", e.OvertimeMultiplier))
	}

	return warnings
}

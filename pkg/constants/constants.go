// Package constants provides the shared defaults for the CostTrak
// forecasting engine. Every tunable the calculators consume has exactly one
// named default here; internal/config exposes them as configuration.
package constants

// WorkDateLayout is the format expected for work dates and week endings in
// record snapshots and is also the output date format.
const WorkDateLayout = "2006-01-02"

// MonthKeyLayout is the key format for monthly trend buckets.
const MonthKeyLayout = "2006-01"

// Labor costing defaults
const (
	// DefaultBurdenRate is the employer-side loading applied to
	// straight-time wages (taxes, insurance).
	DefaultBurdenRate = 0.28

	// DefaultOvertimeMultiplier is the pay multiplier for overtime hours.
	DefaultOvertimeMultiplier = 1.5

	// DefaultFallbackLaborRate is the hourly rate assumed when a craft has
	// neither a running-average rate nor a default rate.
	DefaultFallbackLaborRate = 50.0

	// DefaultWeeklyHours is the planned hours per head per week on a
	// labor forecast row that does not specify its own hours.
	DefaultWeeklyHours = 40.0

	// DefaultCompositeRateWeeklyHours is the assumed week length when
	// converting headcount to hours for composite-rate projections.
	DefaultCompositeRateWeeklyHours = 50.0
)

// Forecast policy defaults
const (
	// DefaultSpendThreshold is the committed/revised-contract ratio below
	// which margin-based estimation is trusted over commitments.
	DefaultSpendThreshold = 0.20
)

// Per-diem defaults
const (
	// DefaultPerDiemRateCap is the daily rate above which a per-diem
	// configuration draws a warning.
	DefaultPerDiemRateCap = 500.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default engine configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultSnapshotFile is the default project snapshot file name
	DefaultSnapshotFile = "project.yaml"
)

// Numeric comparison constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Package constants provides shared constants for the loan-amortizer application.
package constants

// DateLayout is the format expected in config files and request bodies and is
// also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyPlaces is the number of decimal places money is rounded to
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DaysPerYear is the compounding count used for daily compounding
	DaysPerYear = 365
)

// Payments per year for each supported payment frequency.
const (
	MonthlyPaymentsPerYear   = 12
	BiweeklyPaymentsPerYear  = 26
	WeeklyPaymentsPerYear    = 52
	QuarterlyPaymentsPerYear = 4
	AnnualPaymentsPerYear    = 1
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Schedule view constants
const (
	// ViewMonthly renders one row per payment
	ViewMonthly = "monthly"

	// ViewYearly renders one aggregate row per calendar year
	ViewYearly = "yearly"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default loan configuration file name
	DefaultConfigFile = "loan.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "loan.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultPageSize is the number of schedule rows per table page
	DefaultPageSize = 12

	// DefaultPlanKeyPrefix namespaces stored plans in Redis
	DefaultPlanKeyPrefix = "loan-amortizer:plan:"
)

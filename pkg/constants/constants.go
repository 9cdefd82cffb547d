// Package constants provides shared constants for the consortium-simulator application.
package constants

// DateTimeLayout is the format expected in config files for calendar months and
// is also the output date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// MonthsPerSemester is the number of months between semiannual adjustments
	MonthsPerSemester = 6

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Rounding points of the reference spreadsheet. Each derived rate is stored
// with a fixed number of decimals before it feeds the next cell.
const (
	// RatePrecision is the precision of the monthly amortization rates
	RatePrecision = 6

	// InstallmentPercentPrecision is the precision of the installment percentage of credit
	InstallmentPercentPrecision = 8
)

// Insurance levies applied per installment against the insured base.
const (
	// VehicleLifeInsuranceRate is the life insurance levy for vehicle plans
	VehicleLifeInsuranceRate = 0.000599

	// PropertyGuaranteeInsuranceRate is the guarantee insurance levy for property plans
	PropertyGuaranteeInsuranceRate = 0.000392
)

// Defaults for the alternatives comparison (monthly percentages).
const (
	// DefaultSavingsMonthlyRate is the savings account yield
	DefaultSavingsMonthlyRate = 0.6

	// DefaultCDBMonthlyRate is the bank deposit certificate yield
	DefaultCDBMonthlyRate = 1.0

	// DefaultCreditLetterMonthlyRate is the yield of an idle credit letter
	DefaultCreditLetterMonthlyRate = 0.7

	// CashOpportunityFactor inflates the asset value when saving for a cash purchase
	CashOpportunityFactor = 1.15

	// RentToOwnMonthlyRate is the monthly rent as a fraction of the asset value
	RentToOwnMonthlyRate = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRateLimitPerSecond is the default sustained request rate per client
	DefaultRateLimitPerSecond = 5.0

	// DefaultRateLimitBurst is the default request burst per client
	DefaultRateLimitBurst = 10

	// DefaultHistoryLimit is the default number of history records returned
	DefaultHistoryLimit = 50

	// MaxHistoryLimit caps the number of history records returned
	MaxHistoryLimit = 500
)

package insights

import (
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// Detection thresholds. Amounts are in the reporting currency.
const (
	// SharpRisePercent is the month-over-month increase above which a
	// category is flagged as a high-priority anomaly.
	SharpRisePercent = 100.0
	// SharpDropPercent is the month-over-month decrease below which a
	// category is flagged as a medium-priority anomaly.
	SharpDropPercent = -50.0
	// TotalTrendPercent is the absolute total change that triggers the
	// aggregate trend insight.
	TotalTrendPercent = 30.0

	// RecurringMinCount and RecurringMinMonths gate a description group
	// before its variance is even considered.
	RecurringMinCount  = 3
	RecurringMinMonths = 2
	// RecurringMaxVariation is the stddev/mean ratio under which a group
	// counts as recurring regardless of frequency.
	RecurringMaxVariation = 0.3
	// RecurringAlwaysCount qualifies a group on frequency alone.
	RecurringAlwaysCount = 5
	// RecurringTopN is how many recurring groups are surfaced.
	RecurringTopN = 3

	// GroupingKeyLength truncates normalized descriptions; near-duplicate
	// long descriptions intentionally merge on their shared prefix.
	GroupingKeyLength = 30

	// WeekdayMinTransactions is the sample size a weekday needs before its
	// average is considered meaningful.
	WeekdayMinTransactions = 5

	// CardBreakdownTopN is how many categories the card composition
	// insight reports.
	CardBreakdownTopN = 3

	// ProjectionHighPercent / ProjectionLowPercent band the cashflow
	// run-rate recommendation.
	ProjectionHighPercent = 20.0
	ProjectionLowPercent  = -20.0
	// ProjectionTrailingMonths is how many prior months feed the baseline.
	ProjectionTrailingMonths = 3

	// ConsumptionProjectionPercent is the increase that triggers the
	// consumption-side projection recommendation.
	ConsumptionProjectionPercent = 15.0

	// DominantShareMinPercent is the consumption share above which the top
	// category earns a recommendation.
	DominantShareMinPercent = 30.0
)

// Amount thresholds, kept as decimals since they compare against money.
var (
	// SharpRiseMinAmount is the floor a risen category must clear.
	SharpRiseMinAmount = decimal.NewFromInt(50_000)
	// SharpDropMinPrevious is the floor the previous month must clear for a
	// drop to matter.
	SharpDropMinPrevious = decimal.NewFromInt(50_000)
	// NewCategoryMinAmount flags spending in a category with no history.
	NewCategoryMinAmount = decimal.NewFromInt(100_000)
	// CardBreakdownMinTotal gates the card composition insight.
	CardBreakdownMinTotal = decimal.NewFromInt(100_000)
	// USDExposureMinMonthly is the monthly USD average that triggers the
	// currency-exposure insight.
	USDExposureMinMonthly = decimal.NewFromInt(10)
	// ConsumptionProjectionMinDelta is the minimum absolute projected
	// deviation for the consumption projection to fire.
	ConsumptionProjectionMinDelta = decimal.NewFromInt(50_000)
	// DominantSavingRate estimates the saving from trimming the dominant
	// category by 20%.
	DominantSavingRate = decimal.NewFromFloat(0.2)
)

// Config holds the tunable parameters of one analysis run.
type Config struct {
	ReportingCurrency entity.Currency
	// DefaultUSDRate is used when the exchange-rate source has no record.
	DefaultUSDRate decimal.Decimal
	// LookbackMonths is the default analysis window.
	LookbackMonths int
	// InsightLimit caps the returned insight list.
	InsightLimit int
	// FixedCategories are mostly-fixed expenses (rent, utilities, taxes);
	// the dominant-category recommendation softens its wording for them
	// and omits the potential saving. Locale-dependent, hence configurable.
	FixedCategories map[string]bool
	// RateSourceName is the quote source requested from the rate provider.
	RateSourceName string
	// FetchLimit caps how many records are pulled per analysis request.
	FetchLimit int
}

// DefaultFixedCategories returns the fixed-expense set of the live system.
func DefaultFixedCategories() map[string]bool {
	return map[string]bool{
		"Alquiler":  true,
		"Servicios": true,
		"Impuestos": true,
		"Crédito":   true,
		"Seguros":   true,
	}
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		ReportingCurrency: entity.CurrencyARS,
		DefaultUSDRate:    decimal.NewFromInt(1200),
		LookbackMonths:    6,
		InsightLimit:      10,
		FixedCategories:   DefaultFixedCategories(),
		RateSourceName:    "blue",
		FetchLimit:        2000,
	}
}

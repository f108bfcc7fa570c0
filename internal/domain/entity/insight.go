package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsightKind classifies an insight surfaced to the user.
type InsightKind string

const (
	InsightKindAnomaly        InsightKind = "anomaly"
	InsightKindPattern        InsightKind = "pattern"
	InsightKindTrend          InsightKind = "trend"
	InsightKindRecommendation InsightKind = "recommendation"
)

// InsightPriority ranks how urgently an insight should be shown.
type InsightPriority string

const (
	PriorityHigh   InsightPriority = "high"
	PriorityMedium InsightPriority = "medium"
	PriorityLow    InsightPriority = "low"
)

// Rank maps a priority to its sort order (high first).
func (p InsightPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// InsightAction is an optional navigation hint attached to an insight.
type InsightAction struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// InsightData is the structured payload backing an insight. Each analyzer
// emits its own concrete payload type so the numbers that justify an
// insight carry a statically known shape.
type InsightData interface {
	insightData()
}

// CategoryDeltaData backs per-category anomaly insights.
type CategoryDeltaData struct {
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	ChangePercent int             `json:"change_percent"`
}

// TotalTrendData backs the aggregate month-over-month trend insight.
type TotalTrendData struct {
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	ChangePercent int             `json:"change_percent"`
}

// CardBreakdownData backs the card-consumption composition insight.
type CardBreakdownData struct {
	Total     decimal.Decimal            `json:"total"`
	Breakdown map[string]decimal.Decimal `json:"breakdown"`
}

// RecurringExpenseData backs recurring-expense pattern insights.
type RecurringExpenseData struct {
	AvgAmount decimal.Decimal `json:"avg_amount"`
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
}

// WeekdayData backs the day-of-week spending concentration insight.
type WeekdayData struct {
	Day       string          `json:"day"`
	AvgAmount decimal.Decimal `json:"avg_amount"`
}

// CurrencyExposureData backs the foreign-currency exposure insight.
type CurrencyExposureData struct {
	TotalUSD      decimal.Decimal `json:"total_usd"`
	MonthlyUSD    decimal.Decimal `json:"monthly_usd"`
	Count         int             `json:"count"`
	ARSEquivalent decimal.Decimal `json:"ars_equivalent"`
}

// ProjectionData backs run-rate projection recommendations.
type ProjectionData struct {
	Projected     decimal.Decimal `json:"projected"`
	Average       decimal.Decimal `json:"average"`
	ChangePercent int             `json:"change_percent"`
}

// TopCategoryData backs the dominant-category recommendation.
type TopCategoryData struct {
	Category        string           `json:"category"`
	Amount          decimal.Decimal  `json:"amount"`
	Percentage      int              `json:"percentage"`
	IsFixed         bool             `json:"is_fixed"`
	PotentialSaving *decimal.Decimal `json:"potential_saving,omitempty"`
}

func (CategoryDeltaData) insightData()    {}
func (TotalTrendData) insightData()       {}
func (CardBreakdownData) insightData()    {}
func (RecurringExpenseData) insightData() {}
func (WeekdayData) insightData()          {}
func (CurrencyExposureData) insightData() {}
func (ProjectionData) insightData()       {}
func (TopCategoryData) insightData()      {}

// Insight is one unit of analysis surfaced to the user. Insights are
// computed fresh on every request and never persisted.
type Insight struct {
	Kind        InsightKind     `json:"type"`
	Priority    InsightPriority `json:"priority"`
	Category    *string         `json:"category"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Data        InsightData     `json:"data"`
	Action      *InsightAction  `json:"action,omitempty"`
}

// AnalysisMetadata describes the inputs one analysis run covered.
type AnalysisMetadata struct {
	AnalyzedMonths             int       `json:"analyzed_months"`
	TotalTransactions          int       `json:"total_transactions"`
	TotalStatementTransactions int       `json:"total_statement_transactions"`
	GeneratedAt                time.Time `json:"generated_at"`
}

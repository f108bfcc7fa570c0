package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// AnalysisResult is the outcome of one analysis run. Message is set only
// when there was nothing to analyze; an empty insight list is a valid,
// non-exceptional result.
type AnalysisResult struct {
	Insights []entity.Insight        `json:"insights"`
	Message  string                  `json:"message,omitempty"`
	Metadata entity.AnalysisMetadata `json:"metadata"`
}

// Analyze runs the full pipeline over the input: builds the cashflow and
// consumption views, runs every detector, then ranks and caps the result.
// It is pure: same input, config and rate always give the same output.
func Analyze(input AnalysisInput, cfg Config, usdRate decimal.Decimal) (*AnalysisResult, error) {
	conv, err := newConverter(cfg.ReportingCurrency, usdRate)
	if err != nil {
		return nil, err
	}

	metadata := entity.AnalysisMetadata{
		TotalTransactions:          len(input.Transactions),
		TotalStatementTransactions: input.TotalStatementItems(),
		GeneratedAt:                input.Now,
	}

	// No direct transactions means no meaningful behaviour to analyze,
	// even when statement items are present.
	if len(input.Transactions) == 0 {
		return &AnalysisResult{
			Insights: []entity.Insight{},
			Message:  "No hay suficientes datos para generar insights",
			Metadata: metadata,
		}, nil
	}

	cashflow, err := BuildCashflowView(input, conv)
	if err != nil {
		return nil, err
	}
	consumption, err := BuildConsumptionView(input, conv)
	if err != nil {
		return nil, err
	}
	events, err := collectConsumptionEvents(input, conv)
	if err != nil {
		return nil, err
	}

	analyzedMonths := countAnalyzedMonths(cashflow, consumption)
	metadata.AnalyzedMonths = analyzedMonths

	var insights []entity.Insight

	consumptionMonths := consumption.SortedMonthsDesc()
	if len(consumptionMonths) >= 2 {
		curr := consumption[consumptionMonths[0]]
		prev := consumption[consumptionMonths[1]]
		insights = append(insights, detectCategoryAnomalies(curr, prev)...)
		insights = append(insights, detectTotalTrend(curr, prev)...)
	}
	if len(consumptionMonths) >= 1 {
		insights = append(insights, detectCardBreakdown(consumption[consumptionMonths[0]])...)
	}

	insights = append(insights, detectRecurringExpenses(events)...)
	insights = append(insights, detectWeekdayConcentration(events)...)

	usdInsights, err := detectUSDExposure(events, analyzedMonths, conv)
	if err != nil {
		return nil, err
	}
	insights = append(insights, usdInsights...)

	insights = append(insights, detectCashflowProjection(cashflow, input.Now)...)
	insights = append(insights, detectConsumptionProjection(consumption, input.Now)...)
	if len(consumptionMonths) >= 1 {
		insights = append(insights, detectDominantCategory(consumption[consumptionMonths[0]], cfg.FixedCategories)...)
	}

	// Stable sort keeps each detector's own ordering within a priority.
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Rank() < insights[j].Priority.Rank()
	})
	if cfg.InsightLimit > 0 && len(insights) > cfg.InsightLimit {
		insights = insights[:cfg.InsightLimit]
	}

	return &AnalysisResult{Insights: insights, Metadata: metadata}, nil
}

// countAnalyzedMonths counts the distinct months seen across both views.
func countAnalyzedMonths(views ...valueobject.MonthlyView) int {
	months := make(map[string]bool)
	for _, view := range views {
		for month := range view {
			months[month] = true
		}
	}
	return len(months)
}

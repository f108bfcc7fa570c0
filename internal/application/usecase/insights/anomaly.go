package insights

import (
	"fmt"
	"math"
	"net/url"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// percentChange returns the relative change from prev to curr, in percent.
// Callers must ensure prev is not zero. Threshold comparisons use this raw
// value; rounding happens only in titles and payloads.
func percentChange(curr, prev decimal.Decimal) float64 {
	ratio, _ := curr.Sub(prev).Div(prev).Float64()
	return ratio * 100
}

// percentOf returns part as a share of whole, in percent. Callers must
// ensure whole is not zero.
func percentOf(part, whole decimal.Decimal) float64 {
	ratio, _ := part.Div(whole).Float64()
	return ratio * 100
}

// roundPercent rounds a percentage for display and payloads.
func roundPercent(pct float64) int {
	return int(math.Round(pct))
}

// categoryRoute points the insight at the category's transaction list.
func categoryRoute(category string) string {
	return "/transactions?category=" + url.QueryEscape(category)
}

// detectCategoryAnomalies compares each category seen in either of the two
// months. A category yields at most one insight: a sharp rise beats a sharp
// drop, and categories with no history are flagged only when the new
// spending is significant. A category that vanished entirely still counts
// as a drop.
func detectCategoryAnomalies(curr, prev *valueobject.MonthlyAggregate) []entity.Insight {
	seen := make(map[string]bool, len(curr.ByCategory)+len(prev.ByCategory))
	for category := range curr.ByCategory {
		seen[category] = true
	}
	for category := range prev.ByCategory {
		seen[category] = true
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var insights []entity.Insight
	for _, category := range categories {
		category := category
		currAmount := curr.ByCategory[category]
		prevAmount := prev.ByCategory[category]

		if prevAmount.IsPositive() {
			change := percentChange(currAmount, prevAmount)
			rounded := roundPercent(change)
			if change > SharpRisePercent && currAmount.GreaterThan(SharpRiseMinAmount) {
				insights = append(insights, entity.Insight{
					Kind:     entity.InsightKindAnomaly,
					Priority: entity.PriorityHigh,
					Category: &category,
					Title:    fmt.Sprintf("%s subió %d%%", capitalize(category), rounded),
					Description: fmt.Sprintf("Gastaste %s este mes contra %s el mes pasado.",
						formatARS(currAmount), formatARS(prevAmount)),
					Data:   entity.CategoryDeltaData{Current: currAmount, Previous: prevAmount, ChangePercent: rounded},
					Action: &entity.InsightAction{Label: "Ver transacciones", Route: categoryRoute(category)},
				})
			} else if change < SharpDropPercent && prevAmount.GreaterThan(SharpDropMinPrevious) {
				insights = append(insights, entity.Insight{
					Kind:     entity.InsightKindAnomaly,
					Priority: entity.PriorityMedium,
					Category: &category,
					Title:    fmt.Sprintf("%s bajó %d%%", capitalize(category), -rounded),
					Description: fmt.Sprintf("Gastaste %s este mes contra %s el mes pasado.",
						formatARS(currAmount), formatARS(prevAmount)),
					Data:   entity.CategoryDeltaData{Current: currAmount, Previous: prevAmount, ChangePercent: rounded},
					Action: &entity.InsightAction{Label: "Ver detalle", Route: categoryRoute(category)},
				})
			}
		} else if currAmount.GreaterThan(NewCategoryMinAmount) {
			insights = append(insights, entity.Insight{
				Kind:     entity.InsightKindAnomaly,
				Priority: entity.PriorityMedium,
				Category: &category,
				Title:    fmt.Sprintf("Nueva categoría: %s", capitalize(category)),
				Description: fmt.Sprintf("Este mes apareció %s con %s, sin gastos el mes anterior.",
					category, formatARS(currAmount)),
				Data:   entity.CategoryDeltaData{Current: currAmount, Previous: decimal.Zero, ChangePercent: 0},
				Action: &entity.InsightAction{Label: "Ver transacciones", Route: categoryRoute(category)},
			})
		}
	}
	return insights
}

// detectTotalTrend flags a month-over-month swing of the overall total. A
// rise is high priority, a comparable drop is good news and stays low.
func detectTotalTrend(curr, prev *valueobject.MonthlyAggregate) []entity.Insight {
	if !prev.Total.IsPositive() {
		return nil
	}
	change := percentChange(curr.Total, prev.Total)
	if math.Abs(change) <= TotalTrendPercent {
		return nil
	}
	rounded := roundPercent(change)

	data := entity.TotalTrendData{Current: curr.Total, Previous: prev.Total, ChangePercent: rounded}
	action := &entity.InsightAction{Label: "Ver mes", Route: "/transactions"}
	if change > 0 {
		return []entity.Insight{{
			Kind:     entity.InsightKindTrend,
			Priority: entity.PriorityHigh,
			Title:    fmt.Sprintf("Consumo mensual +%d%%", rounded),
			Description: fmt.Sprintf("Tu consumo total fue %s, contra %s el mes anterior.",
				formatARS(curr.Total), formatARS(prev.Total)),
			Data:   data,
			Action: action,
		}}
	}
	return []entity.Insight{{
		Kind:     entity.InsightKindTrend,
		Priority: entity.PriorityLow,
		Title:    fmt.Sprintf("Consumo mensual %d%%", rounded),
		Description: fmt.Sprintf("Tu consumo total bajó a %s, desde %s el mes anterior.",
			formatARS(curr.Total), formatARS(prev.Total)),
		Data:   data,
		Action: action,
	}}
}

// detectCardBreakdown surfaces where the card bill went when the itemized
// card consumption of the current month is significant. The top categories
// are reported as shares of the card total, ordered by amount with ties
// broken by name so output is stable.
func detectCardBreakdown(curr *valueobject.MonthlyAggregate) []entity.Insight {
	total := curr.CardTotal()
	if !total.GreaterThan(CardBreakdownMinTotal) {
		return nil
	}

	type slice struct {
		category string
		amount   decimal.Decimal
	}
	slices := make([]slice, 0, len(curr.CardBreakdown))
	for category, amount := range curr.CardBreakdown {
		slices = append(slices, slice{category, amount})
	}
	sort.Slice(slices, func(i, j int) bool {
		if !slices[i].amount.Equal(slices[j].amount) {
			return slices[i].amount.GreaterThan(slices[j].amount)
		}
		return slices[i].category < slices[j].category
	})
	if len(slices) > CardBreakdownTopN {
		slices = slices[:CardBreakdownTopN]
	}

	breakdown := make(map[string]decimal.Decimal, len(slices))
	parts := make([]string, 0, len(slices))
	for _, s := range slices {
		breakdown[s.category] = s.amount
		parts = append(parts, fmt.Sprintf("%s: %d%%", s.category, roundPercent(percentOf(s.amount, total))))
	}

	description := "Tu pago de tarjeta se compone de: "
	for i, part := range parts {
		if i > 0 {
			description += ", "
		}
		description += part
	}
	description += "."

	return []entity.Insight{{
		Kind:        entity.InsightKindPattern,
		Priority:    entity.PriorityHigh,
		Title:       fmt.Sprintf("Tu tarjeta concentró %s", formatARS(total)),
		Description: description,
		Data:        entity.CardBreakdownData{Total: total, Breakdown: breakdown},
		Action:      &entity.InsightAction{Label: "Ver resumen", Route: "/credit-cards"},
	}}
}

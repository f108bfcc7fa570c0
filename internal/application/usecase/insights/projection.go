package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// trailingAverage returns the mean of up to n month totals taken from months,
// which must be sorted most recent first and start after the current month.
func trailingAverage(view valueobject.MonthlyView, months []string, n int) (decimal.Decimal, int) {
	if len(months) > n {
		months = months[:n]
	}
	if len(months) == 0 {
		return decimal.Zero, 0
	}
	sum := decimal.Zero
	for _, month := range months {
		sum = sum.Add(view[month].Total)
	}
	return sum.Div(decimal.NewFromInt(int64(len(months)))), len(months)
}

// projectMonthTotal extrapolates a partial month total to the full month
// using the elapsed fraction of the calendar month.
func projectMonthTotal(total decimal.Decimal, now time.Time) decimal.Decimal {
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	return total.Div(decimal.NewFromInt(int64(now.Day()))).
		Mul(decimal.NewFromInt(int64(daysInMonth)))
}

// detectCashflowProjection extrapolates the running month's outflow and
// compares it against the recent baseline. It only speaks when the newest
// bucket actually is the calendar month in progress; a stale dataset must
// not produce a projection.
func detectCashflowProjection(view valueobject.MonthlyView, now time.Time) []entity.Insight {
	months := view.SortedMonthsDesc()
	if len(months) == 0 || months[0] != valueobject.MonthKey(now) {
		return nil
	}
	average, sampled := trailingAverage(view, months[1:], ProjectionTrailingMonths)
	if sampled == 0 || !average.IsPositive() {
		return nil
	}

	projected := projectMonthTotal(view[months[0]].Total, now)
	change := percentChange(projected, average)
	rounded := roundPercent(change)
	data := entity.ProjectionData{Projected: projected, Average: average, ChangePercent: rounded}

	if change > ProjectionHighPercent {
		return []entity.Insight{{
			Kind:     entity.InsightKindRecommendation,
			Priority: entity.PriorityHigh,
			Title:    "Proyección de cashflow elevada",
			Description: fmt.Sprintf("A este ritmo vas a egresar %s este mes, un %d%% más que tu promedio de %s.",
				formatARS(projected), rounded, formatARS(average)),
			Data:   data,
			Action: &entity.InsightAction{Label: "Ver transacciones grandes", Route: "/transactions"},
		}}
	}
	if change < ProjectionLowPercent {
		return []entity.Insight{{
			Kind:     entity.InsightKindRecommendation,
			Priority: entity.PriorityLow,
			Title:    "Mes de bajo egreso",
			Description: fmt.Sprintf("A este ritmo vas a egresar %s este mes, un %d%% menos que tu promedio de %s.",
				formatARS(projected), -rounded, formatARS(average)),
			Data: data,
		}}
	}
	return nil
}

// detectConsumptionProjection does the same extrapolation over consumption.
// It only warns on the upside, and only when the projected deviation is
// large enough in absolute terms to be worth acting on.
func detectConsumptionProjection(view valueobject.MonthlyView, now time.Time) []entity.Insight {
	months := view.SortedMonthsDesc()
	if len(months) == 0 || months[0] != valueobject.MonthKey(now) {
		return nil
	}
	average, sampled := trailingAverage(view, months[1:], ProjectionTrailingMonths)
	if sampled == 0 || !average.IsPositive() {
		return nil
	}

	projected := projectMonthTotal(view[months[0]].Total, now)
	change := percentChange(projected, average)
	if change <= ConsumptionProjectionPercent {
		return nil
	}
	if projected.Sub(average).LessThan(ConsumptionProjectionMinDelta) {
		return nil
	}
	rounded := roundPercent(change)

	return []entity.Insight{{
		Kind:     entity.InsightKindRecommendation,
		Priority: entity.PriorityMedium,
		Title:    "Vas camino a consumir más este mes",
		Description: fmt.Sprintf("Proyectado %s de consumo contra un promedio de %s (+%d%%).",
			formatARS(projected), formatARS(average), rounded),
		Data:   entity.ProjectionData{Projected: projected, Average: average, ChangePercent: rounded},
		Action: &entity.InsightAction{Label: "Revisar hábitos", Route: "/transactions"},
	}}
}

// detectDominantCategory recommends looking at the category that dominates
// the current month's consumption. For mostly-fixed expenses the wording is
// softened and no saving is suggested, since rent or taxes are not trimmed
// by willpower.
func detectDominantCategory(curr *valueobject.MonthlyAggregate, fixedCategories map[string]bool) []entity.Insight {
	if !curr.Total.IsPositive() {
		return nil
	}

	type share struct {
		category string
		amount   decimal.Decimal
	}
	shares := make([]share, 0, len(curr.ByCategory))
	for category, amount := range curr.ByCategory {
		shares = append(shares, share{category, amount})
	}
	if len(shares) == 0 {
		return nil
	}
	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].amount.Equal(shares[j].amount) {
			return shares[i].amount.GreaterThan(shares[j].amount)
		}
		return shares[i].category < shares[j].category
	})

	top := shares[0]
	sharePct := percentOf(top.amount, curr.Total)
	if sharePct <= DominantShareMinPercent {
		return nil
	}
	percentage := roundPercent(sharePct)

	category := top.category
	data := entity.TopCategoryData{
		Category:   category,
		Amount:     top.amount,
		Percentage: percentage,
		IsFixed:    fixedCategories[category],
	}

	if data.IsFixed {
		return []entity.Insight{{
			Kind:     entity.InsightKindRecommendation,
			Priority: entity.PriorityMedium,
			Category: &category,
			Title:    fmt.Sprintf("%s = %d%% de tu consumo", capitalize(category), percentage),
			Description: fmt.Sprintf("%s concentra %s de tu mes. Es un gasto fijo, pero conviene tenerlo presente al planificar.",
				capitalize(category), formatARS(top.amount)),
			Data:   data,
			Action: &entity.InsightAction{Label: "Ver detalle", Route: categoryRoute(category)},
		}}
	}

	saving := top.amount.Mul(DominantSavingRate)
	data.PotentialSaving = &saving
	return []entity.Insight{{
		Kind:     entity.InsightKindRecommendation,
		Priority: entity.PriorityMedium,
		Category: &category,
		Title:    fmt.Sprintf("%s = %d%% de tu consumo", capitalize(category), percentage),
		Description: fmt.Sprintf("%s concentra %s de tu mes. Recortando un 20%% liberás %s.",
			capitalize(category), formatARS(top.amount), formatARS(saving)),
		Data:   data,
		Action: &entity.InsightAction{Label: "Crear presupuesto", Route: "/budgets"},
	}}
}

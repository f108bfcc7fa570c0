package insights

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

func aggregateOf(month string, byCategory map[string]int64) *valueobject.MonthlyAggregate {
	agg := valueobject.NewMonthlyAggregate(month)
	for category, amount := range byCategory {
		agg.Add(category, decimal.NewFromInt(amount))
	}
	return agg
}

func TestDetectCategoryAnomalies(t *testing.T) {
	t.Run("sharp rise is a high priority anomaly", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"delivery": 110000})
		prev := aggregateOf("2026-01", map[string]int64{"delivery": 50000})

		insights := detectCategoryAnomalies(curr, prev)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		got := insights[0]
		if got.Kind != entity.InsightKindAnomaly || got.Priority != entity.PriorityHigh {
			t.Errorf("expected high anomaly, got %s/%s", got.Kind, got.Priority)
		}
		if !strings.Contains(got.Title, "120%") {
			t.Errorf("expected title with the 120%% change, got %q", got.Title)
		}
		if got.Category == nil || *got.Category != "delivery" {
			t.Error("expected the category to be attached")
		}
		data, ok := got.Data.(entity.CategoryDeltaData)
		if !ok {
			t.Fatalf("expected CategoryDeltaData, got %T", got.Data)
		}
		if data.ChangePercent != 120 {
			t.Errorf("expected change 120, got %d", data.ChangePercent)
		}
		if got.Action == nil || got.Action.Route != "/transactions?category=delivery" {
			t.Errorf("expected an action pointing at the category, got %+v", got.Action)
		}
	})

	t.Run("raw change just over the threshold still fires", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"delivery": 100200})
		prev := aggregateOf("2026-01", map[string]int64{"delivery": 50000})

		insights := detectCategoryAnomalies(curr, prev)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight at +100.4%%, got %d", len(insights))
		}
		got := insights[0]
		if got.Priority != entity.PriorityHigh {
			t.Errorf("expected high priority, got %s", got.Priority)
		}
		if !strings.Contains(got.Title, "100%") {
			t.Errorf("expected the rounded change in the title, got %q", got.Title)
		}
	})

	t.Run("vanished category counts as a full drop", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Comida": 90000})
		prev := aggregateOf("2026-01", map[string]int64{"Comida": 90000, "Ropa": 200000})

		insights := detectCategoryAnomalies(curr, prev)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		got := insights[0]
		if got.Category == nil || *got.Category != "Ropa" {
			t.Error("expected the vanished category to be flagged")
		}
		if got.Priority != entity.PriorityMedium {
			t.Errorf("expected medium priority, got %s", got.Priority)
		}
		data := got.Data.(entity.CategoryDeltaData)
		if data.ChangePercent != -100 {
			t.Errorf("expected change -100, got %d", data.ChangePercent)
		}
	})

	t.Run("rise below the amount floor is ignored", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Kiosco": 30000})
		prev := aggregateOf("2026-01", map[string]int64{"Kiosco": 10000})
		if got := detectCategoryAnomalies(curr, prev); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})

	t.Run("sharp drop is a medium priority anomaly", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Ropa": 60000})
		prev := aggregateOf("2026-01", map[string]int64{"Ropa": 200000})

		insights := detectCategoryAnomalies(curr, prev)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		if insights[0].Priority != entity.PriorityMedium {
			t.Errorf("expected medium priority, got %s", insights[0].Priority)
		}
		data := insights[0].Data.(entity.CategoryDeltaData)
		if data.ChangePercent != -70 {
			t.Errorf("expected change -70, got %d", data.ChangePercent)
		}
	})

	t.Run("new category needs significant spending", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Viajes": 150000, "Mascotas": 80000})
		prev := aggregateOf("2026-01", map[string]int64{"Comida": 90000})

		insights := detectCategoryAnomalies(curr, prev)
		if len(insights) != 1 {
			t.Fatalf("expected only the large new category, got %d insights", len(insights))
		}
		if !strings.Contains(insights[0].Title, "Viajes") {
			t.Errorf("expected Viajes, got %q", insights[0].Title)
		}
		if insights[0].Priority != entity.PriorityMedium {
			t.Errorf("expected medium priority, got %s", insights[0].Priority)
		}
	})

	t.Run("one insight per category at most", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Electro": 500000})
		prev := aggregateOf("2026-01", map[string]int64{"Electro": 100000})
		if got := detectCategoryAnomalies(curr, prev); len(got) != 1 {
			t.Errorf("expected exactly 1 insight, got %d", len(got))
		}
	})

	t.Run("output order is stable by category name", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Zapatos": 300000, "Audio": 300000})
		prev := aggregateOf("2026-01", map[string]int64{"Zapatos": 100000, "Audio": 100000})

		insights := detectCategoryAnomalies(curr, prev)
		if len(insights) != 2 {
			t.Fatalf("expected 2 insights, got %d", len(insights))
		}
		if *insights[0].Category != "Audio" || *insights[1].Category != "Zapatos" {
			t.Errorf("expected Audio then Zapatos, got %s then %s", *insights[0].Category, *insights[1].Category)
		}
	})
}

func TestDetectTotalTrend(t *testing.T) {
	t.Run("rise above threshold is high priority", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Comida": 140000})
		prev := aggregateOf("2026-01", map[string]int64{"Comida": 100000})

		insights := detectTotalTrend(curr, prev)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		if insights[0].Kind != entity.InsightKindTrend || insights[0].Priority != entity.PriorityHigh {
			t.Errorf("expected high trend, got %s/%s", insights[0].Kind, insights[0].Priority)
		}
		if !strings.Contains(insights[0].Title, "+40%") {
			t.Errorf("expected +40%% in title, got %q", insights[0].Title)
		}
	})

	t.Run("drop above threshold is low priority", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Comida": 60000})
		prev := aggregateOf("2026-01", map[string]int64{"Comida": 100000})

		insights := detectTotalTrend(curr, prev)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		if insights[0].Priority != entity.PriorityLow {
			t.Errorf("expected low priority, got %s", insights[0].Priority)
		}
	})

	t.Run("changes inside the band stay quiet", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Comida": 120000})
		prev := aggregateOf("2026-01", map[string]int64{"Comida": 100000})
		if got := detectTotalTrend(curr, prev); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})

	t.Run("no previous month means no trend", func(t *testing.T) {
		curr := aggregateOf("2026-02", map[string]int64{"Comida": 120000})
		prev := aggregateOf("2026-01", nil)
		if got := detectTotalTrend(curr, prev); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})
}

func TestDetectCardBreakdown(t *testing.T) {
	t.Run("significant card total lists the top categories", func(t *testing.T) {
		agg := valueobject.NewMonthlyAggregate("2026-02")
		agg.AddCardConsumption("Comida", decimal.NewFromInt(90000))
		agg.AddCardConsumption("Suscripciones", decimal.NewFromInt(15000))
		agg.AddCardConsumption("Ropa", decimal.NewFromInt(40000))
		agg.AddCardConsumption("Electro", decimal.NewFromInt(60000))

		insights := detectCardBreakdown(agg)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		got := insights[0]
		if got.Kind != entity.InsightKindPattern || got.Priority != entity.PriorityHigh {
			t.Errorf("expected high pattern, got %s/%s", got.Kind, got.Priority)
		}
		data := got.Data.(entity.CardBreakdownData)
		if !data.Total.Equal(decimal.NewFromInt(205000)) {
			t.Errorf("expected total 205000, got %s", data.Total)
		}
		if len(data.Breakdown) != 3 {
			t.Fatalf("expected top 3 categories, got %d", len(data.Breakdown))
		}
		if _, ok := data.Breakdown["Suscripciones"]; ok {
			t.Error("smallest category must not make the top 3")
		}
		if !strings.Contains(got.Description, "Comida: 44%") {
			t.Errorf("expected the share of the largest category, got %q", got.Description)
		}
		if !strings.Contains(got.Description, "Electro: 29%") {
			t.Errorf("expected the share of the runner-up, got %q", got.Description)
		}
		if got.Action == nil || got.Action.Route != "/credit-cards" {
			t.Errorf("expected the card summary action, got %+v", got.Action)
		}
	})

	t.Run("small card total stays quiet", func(t *testing.T) {
		agg := valueobject.NewMonthlyAggregate("2026-02")
		agg.AddCardConsumption("Comida", decimal.NewFromInt(50000))
		if got := detectCardBreakdown(agg); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})
}

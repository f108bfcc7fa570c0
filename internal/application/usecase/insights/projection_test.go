package insights

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

func viewWithTotals(totals map[string]int64) valueobject.MonthlyView {
	view := valueobject.MonthlyView{}
	for month, total := range totals {
		agg := valueobject.NewMonthlyAggregate(month)
		agg.Add("Comida", decimal.NewFromInt(total))
		view[month] = agg
	}
	return view
}

func TestDetectCashflowProjection(t *testing.T) {
	// Half of March elapsed: 200.000 so far projects to ~413.000.
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	t.Run("run rate above the baseline warns", func(t *testing.T) {
		view := viewWithTotals(map[string]int64{
			"2026-03": 200000,
			"2026-02": 180000,
			"2026-01": 200000,
			"2025-12": 220000,
		})

		insights := detectCashflowProjection(view, now)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		got := insights[0]
		if got.Kind != entity.InsightKindRecommendation || got.Priority != entity.PriorityHigh {
			t.Errorf("expected high recommendation, got %s/%s", got.Kind, got.Priority)
		}
		data := got.Data.(entity.ProjectionData)
		if !data.Average.Equal(decimal.NewFromInt(200000)) {
			t.Errorf("expected baseline 200000, got %s", data.Average)
		}
		if data.ChangePercent <= 20 {
			t.Errorf("expected change above 20, got %d", data.ChangePercent)
		}
	})

	t.Run("run rate below the baseline is good news", func(t *testing.T) {
		view := viewWithTotals(map[string]int64{
			"2026-03": 50000,
			"2026-02": 200000,
		})

		insights := detectCashflowProjection(view, now)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		if insights[0].Priority != entity.PriorityLow {
			t.Errorf("expected low priority, got %s", insights[0].Priority)
		}
	})

	t.Run("stale data never projects", func(t *testing.T) {
		view := viewWithTotals(map[string]int64{
			"2026-01": 400000,
			"2025-12": 100000,
		})
		if got := detectCashflowProjection(view, now); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})

	t.Run("no history means no baseline", func(t *testing.T) {
		view := viewWithTotals(map[string]int64{"2026-03": 400000})
		if got := detectCashflowProjection(view, now); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})

	t.Run("baseline uses at most the trailing months", func(t *testing.T) {
		view := viewWithTotals(map[string]int64{
			"2026-03": 200000,
			"2026-02": 300000,
			"2026-01": 300000,
			"2025-12": 300000,
			"2025-11": 5000000,
		})

		insights := detectCashflowProjection(view, now)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		data := insights[0].Data.(entity.ProjectionData)
		if !data.Average.Equal(decimal.NewFromInt(300000)) {
			t.Errorf("expected baseline 300000 ignoring november, got %s", data.Average)
		}
	})
}

func TestDetectConsumptionProjection(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	t.Run("projected overrun warns at medium", func(t *testing.T) {
		view := viewWithTotals(map[string]int64{
			"2026-03": 200000,
			"2026-02": 250000,
		})

		insights := detectConsumptionProjection(view, now)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		if insights[0].Priority != entity.PriorityMedium {
			t.Errorf("expected medium priority, got %s", insights[0].Priority)
		}
	})

	t.Run("small absolute deviation stays quiet", func(t *testing.T) {
		view := viewWithTotals(map[string]int64{
			"2026-03": 100,
			"2026-02": 120,
		})
		if got := detectConsumptionProjection(view, now); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})

	t.Run("only the upside warns", func(t *testing.T) {
		view := viewWithTotals(map[string]int64{
			"2026-03": 50000,
			"2026-02": 200000,
		})
		if got := detectConsumptionProjection(view, now); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})
}

func TestDetectDominantCategory(t *testing.T) {
	fixed := DefaultFixedCategories()

	t.Run("dominant variable category suggests a saving", func(t *testing.T) {
		agg := valueobject.NewMonthlyAggregate("2026-03")
		agg.Add("Delivery", decimal.NewFromInt(200000))
		agg.Add("Comida", decimal.NewFromInt(150000))
		agg.Add("Transporte", decimal.NewFromInt(50000))

		insights := detectDominantCategory(agg, fixed)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		data := insights[0].Data.(entity.TopCategoryData)
		if data.Category != "Delivery" || data.Percentage != 50 {
			t.Errorf("expected Delivery at 50%%, got %s at %d%%", data.Category, data.Percentage)
		}
		if data.IsFixed {
			t.Error("Delivery is not a fixed category")
		}
		if data.PotentialSaving == nil || !data.PotentialSaving.Equal(decimal.NewFromInt(40000)) {
			t.Errorf("expected potential saving 40000, got %v", data.PotentialSaving)
		}
	})

	t.Run("fixed category softens the advice", func(t *testing.T) {
		agg := valueobject.NewMonthlyAggregate("2026-03")
		agg.Add("Alquiler", decimal.NewFromInt(500000))
		agg.Add("Comida", decimal.NewFromInt(300000))

		insights := detectDominantCategory(agg, fixed)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(insights))
		}
		data := insights[0].Data.(entity.TopCategoryData)
		if !data.IsFixed {
			t.Error("Alquiler must be recognized as fixed")
		}
		if data.PotentialSaving != nil {
			t.Error("fixed categories must not carry a potential saving")
		}
	})

	t.Run("share barely over the threshold still counts", func(t *testing.T) {
		agg := valueobject.NewMonthlyAggregate("2026-03")
		agg.Add("Delivery", decimal.NewFromInt(30400))
		agg.Add("Comida", decimal.NewFromInt(25000))
		agg.Add("Transporte", decimal.NewFromInt(24600))
		agg.Add("Ropa", decimal.NewFromInt(20000))

		insights := detectDominantCategory(agg, fixed)
		if len(insights) != 1 {
			t.Fatalf("expected 1 insight at a 30.4%% share, got %d", len(insights))
		}
		data := insights[0].Data.(entity.TopCategoryData)
		if data.Percentage != 30 {
			t.Errorf("expected the display share rounded to 30, got %d", data.Percentage)
		}
		if insights[0].Action == nil || insights[0].Action.Route != "/budgets" {
			t.Errorf("expected the budget action, got %+v", insights[0].Action)
		}
	})

	t.Run("balanced months stay quiet", func(t *testing.T) {
		agg := valueobject.NewMonthlyAggregate("2026-03")
		agg.Add("Comida", decimal.NewFromInt(100000))
		agg.Add("Transporte", decimal.NewFromInt(100000))
		agg.Add("Ropa", decimal.NewFromInt(100000))
		agg.Add("Salud", decimal.NewFromInt(100000))

		if got := detectDominantCategory(agg, fixed); len(got) != 0 {
			t.Errorf("expected no insights, got %d", len(got))
		}
	})
}

package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// weekdayNames holds the plural Spanish day names, indexed by time.Weekday.
var weekdayNames = [7]string{
	"domingos",
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábados",
}

// detectWeekdayConcentration finds the day of the week where spending per
// purchase runs highest. Only direct transactions are bucketed; card-line
// dates belong to the billing period, not the user's weekly rhythm. Only
// days with a meaningful sample count qualify, and a tie on the average
// resolves to the earliest day starting from Sunday.
func detectWeekdayConcentration(events []consumptionEvent) []entity.Insight {
	var totals [7]decimal.Decimal
	var counts [7]int
	for _, ev := range events {
		if !ev.direct || ev.date == nil {
			continue
		}
		day := ev.date.Weekday()
		totals[day] = totals[day].Add(ev.amount)
		counts[day]++
	}

	best := -1
	var bestAvg decimal.Decimal
	for day := time.Sunday; day <= time.Saturday; day++ {
		if counts[day] < WeekdayMinTransactions {
			continue
		}
		avg := totals[day].Div(decimal.NewFromInt(int64(counts[day])))
		if best == -1 || avg.GreaterThan(bestAvg) {
			best = int(day)
			bestAvg = avg
		}
	}
	if best == -1 {
		return nil
	}

	name := weekdayNames[best]
	return []entity.Insight{{
		Kind:     entity.InsightKindPattern,
		Priority: entity.PriorityLow,
		Title:    fmt.Sprintf("Los %s gastás más", name),
		Description: fmt.Sprintf("Tu gasto promedio los %s es %s, el más alto de la semana.",
			name, formatARS(bestAvg)),
		Data: entity.WeekdayData{Day: name, AvgAmount: bestAvg},
	}}
}

// detectUSDExposure flags sustained foreign-currency spending. Amounts are
// taken as denominated, before normalization, so the insight reads in the
// currency the user actually paid in.
func detectUSDExposure(events []consumptionEvent, analyzedMonths int, conv *converter) ([]entity.Insight, error) {
	totalUSD := decimal.Zero
	count := 0
	for _, ev := range events {
		if ev.currency != entity.CurrencyUSD {
			continue
		}
		totalUSD = totalUSD.Add(ev.rawAmount)
		count++
	}
	months := analyzedMonths
	if months < 1 {
		months = 1
	}
	monthly := totalUSD.Div(decimal.NewFromInt(int64(months)))
	if !monthly.GreaterThan(USDExposureMinMonthly) {
		return nil, nil
	}

	arsEquivalent, err := conv.Normalize(totalUSD, entity.CurrencyUSD)
	if err != nil {
		return nil, err
	}
	return []entity.Insight{{
		Kind:     entity.InsightKindTrend,
		Priority: entity.PriorityMedium,
		Title:    fmt.Sprintf("Gastás %s por mes en dólares", formatUSD(monthly)),
		Description: fmt.Sprintf("Acumulaste %s en %d consumos en dólares, unos %s al cambio.",
			formatUSD(totalUSD), count, formatARS(arsEquivalent)),
		Data: entity.CurrencyExposureData{
			TotalUSD:      totalUSD,
			MonthlyUSD:    monthly,
			Count:         count,
			ARSEquivalent: arsEquivalent,
		},
		Action: &entity.InsightAction{Label: "Ver gastos USD", Route: "/transactions"},
	}}, nil
}

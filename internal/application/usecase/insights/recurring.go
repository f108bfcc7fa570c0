package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// GroupingKey normalizes a free-text description so that near-identical
// merchant strings fall into the same group: lowercased, trimmed, runs of
// whitespace collapsed, then truncated. Long descriptions that share the
// truncated prefix merge on purpose.
func GroupingKey(description string) string {
	key := strings.ToLower(strings.TrimSpace(description))
	key = strings.Join(strings.Fields(key), " ")
	runes := []rune(key)
	if len(runes) > GroupingKeyLength {
		return string(runes[:GroupingKeyLength])
	}
	return key
}

// consumptionEvent is one consumption-side movement, flattened from either a
// plain transaction or an itemized statement line.
type consumptionEvent struct {
	key         string
	description string
	category    string
	amount      decimal.Decimal // Normalized to the reporting currency
	rawAmount   decimal.Decimal // As denominated
	currency    entity.Currency
	month       string
	date        *time.Time
	direct      bool // From a plain transaction, not a statement line
}

// collectConsumptionEvents flattens the input into individual consumption
// events: expense transactions except card payments, plus every consumption
// and installment statement line attributed to its payment month. Refund
// lines stay in with their negative amounts.
func collectConsumptionEvents(input AnalysisInput, conv *converter) ([]consumptionEvent, error) {
	var events []consumptionEvent

	for _, tx := range input.Transactions {
		if tx.Type != entity.TransactionTypeExpense || tx.IsCardPayment() {
			continue
		}
		amount, err := conv.Normalize(tx.Amount, tx.Currency)
		if err != nil {
			return nil, err
		}
		date := tx.Date
		events = append(events, consumptionEvent{
			key:         GroupingKey(tx.Description),
			description: tx.Description,
			category:    tx.Category,
			amount:      amount,
			rawAmount:   tx.Amount,
			currency:    tx.Currency,
			month:       valueobject.MonthKey(tx.Date),
			date:        &date,
			direct:      true,
		})
	}

	for _, record := range input.Statements {
		month := valueobject.MonthKey(record.Import.PaymentMonth())
		for _, item := range record.Items {
			if item.Kind != entity.ItemKindConsumption && item.Kind != entity.ItemKindInstallment {
				continue
			}
			amount, err := conv.Normalize(item.Amount, item.Currency)
			if err != nil {
				return nil, err
			}
			category := item.CategoryName
			if category == "" {
				category = entity.UncategorizedName
			}
			events = append(events, consumptionEvent{
				key:         GroupingKey(item.Description),
				description: item.Description,
				category:    category,
				amount:      amount,
				rawAmount:   item.Amount,
				currency:    item.Currency,
				month:       month,
				date:        item.Date,
			})
		}
	}
	return events, nil
}

type recurringGroup struct {
	key         string
	description string
	category    string
	amounts     []float64
	total       decimal.Decimal
	months      map[string]bool
}

// detectRecurringExpenses finds descriptions that repeat across months with
// stable amounts. A group qualifies when it has enough occurrences spread
// over at least two months and either its amounts barely vary or it repeats
// often enough that variation stops mattering. The strongest groups, ranked
// by average amount times frequency, are surfaced.
func detectRecurringExpenses(events []consumptionEvent) []entity.Insight {
	groups := make(map[string]*recurringGroup)
	for _, ev := range events {
		if ev.key == "" {
			continue
		}
		g, ok := groups[ev.key]
		if !ok {
			g = &recurringGroup{
				key:         ev.key,
				description: ev.description,
				category:    ev.category,
				months:      make(map[string]bool),
			}
			groups[ev.key] = g
		}
		amount, _ := ev.amount.Float64()
		g.amounts = append(g.amounts, amount)
		g.total = g.total.Add(ev.amount)
		g.months[ev.month] = true
	}

	type ranked struct {
		group *recurringGroup
		mean  float64
		score float64
	}
	var qualified []ranked
	for _, g := range groups {
		count := len(g.amounts)
		if count < RecurringMinCount || len(g.months) < RecurringMinMonths {
			continue
		}
		mean := 0.0
		for _, a := range g.amounts {
			mean += a
		}
		mean /= float64(count)
		if mean == 0 {
			continue
		}
		variance := 0.0
		for _, a := range g.amounts {
			variance += (a - mean) * (a - mean)
		}
		variance /= float64(count)
		variation := math.Sqrt(variance) / mean
		if variation >= RecurringMaxVariation && count < RecurringAlwaysCount {
			continue
		}
		qualified = append(qualified, ranked{group: g, mean: mean, score: mean * float64(count)})
	}

	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].score != qualified[j].score {
			return qualified[i].score > qualified[j].score
		}
		return qualified[i].group.key < qualified[j].group.key
	})
	if len(qualified) > RecurringTopN {
		qualified = qualified[:RecurringTopN]
	}

	insights := make([]entity.Insight, 0, len(qualified))
	for _, r := range qualified {
		g := r.group
		category := g.category
		count := len(g.amounts)
		avg := g.total.Div(decimal.NewFromInt(int64(count)))
		insights = append(insights, entity.Insight{
			Kind:     entity.InsightKindPattern,
			Priority: entity.PriorityMedium,
			Category: &category,
			Title:    fmt.Sprintf("Gasto recurrente: %s", capitalize(strings.TrimSpace(g.description))),
			Description: fmt.Sprintf("Lo pagaste %d veces, en promedio %s por vez (%s en total).",
				count, formatARS(avg), formatARS(g.total)),
			Data:   entity.RecurringExpenseData{AvgAmount: avg, Count: count, Total: g.total},
			Action: &entity.InsightAction{Label: "Ver en transacciones", Route: "/transactions"},
		})
	}
	return insights
}

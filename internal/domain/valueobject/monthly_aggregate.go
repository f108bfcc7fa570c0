// Package valueobject contains domain value objects for the analytics core.
package valueobject

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MonthKeyLayout is the format of a month bucket key (YYYY-MM).
const MonthKeyLayout = "2006-01"

// MonthKey returns the bucket key for a date.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// MonthlyAggregate is one month's rollup of spending under a given view.
// Amounts are in the reporting currency. Builders return finished
// aggregates; downstream analyzers never mutate them.
type MonthlyAggregate struct {
	Month            string // YYYY-MM
	Total            decimal.Decimal
	ByCategory       map[string]decimal.Decimal
	ByCategoryCount  map[string]int
	TransactionCount int

	// CardBreakdown is populated in the consumption view only: the subset
	// of ByCategory contributed by itemized card consumptions.
	CardBreakdown map[string]decimal.Decimal
}

// NewMonthlyAggregate creates an empty aggregate for a month key.
func NewMonthlyAggregate(month string) *MonthlyAggregate {
	return &MonthlyAggregate{
		Month:           month,
		Total:           decimal.Zero,
		ByCategory:      make(map[string]decimal.Decimal),
		ByCategoryCount: make(map[string]int),
		CardBreakdown:   make(map[string]decimal.Decimal),
	}
}

// Add accumulates one movement into the aggregate.
func (a *MonthlyAggregate) Add(category string, amount decimal.Decimal) {
	a.Total = a.Total.Add(amount)
	a.ByCategory[category] = a.ByCategory[category].Add(amount)
	a.ByCategoryCount[category]++
	a.TransactionCount++
}

// AddCardConsumption accumulates one itemized card line, recording it both
// in the category totals and in the card breakdown.
func (a *MonthlyAggregate) AddCardConsumption(category string, amount decimal.Decimal) {
	a.Add(category, amount)
	a.CardBreakdown[category] = a.CardBreakdown[category].Add(amount)
}

// CardTotal returns the sum of the card breakdown.
func (a *MonthlyAggregate) CardTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range a.CardBreakdown {
		total = total.Add(amount)
	}
	return total
}

// Clone returns a deep copy, so an aggregate handed to a downstream
// analyzer can never be mutated through a shared map.
func (a *MonthlyAggregate) Clone() *MonthlyAggregate {
	clone := NewMonthlyAggregate(a.Month)
	clone.Total = a.Total
	clone.TransactionCount = a.TransactionCount
	for cat, amount := range a.ByCategory {
		clone.ByCategory[cat] = amount
	}
	for cat, count := range a.ByCategoryCount {
		clone.ByCategoryCount[cat] = count
	}
	for cat, amount := range a.CardBreakdown {
		clone.CardBreakdown[cat] = amount
	}
	return clone
}

// MonthlyView is a set of monthly aggregates keyed by month.
type MonthlyView map[string]*MonthlyAggregate

// SortedMonthsDesc returns the view's month keys, most recent first.
func (v MonthlyView) SortedMonthsDesc() []string {
	months := make([]string, 0, len(v))
	for month := range v {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Package reconciliation contains the statement reconciliation use cases.
package reconciliation

import (
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// currencyTotals accumulates the computed side of one currency.
type currencyTotals struct {
	consumption decimal.Decimal
	taxes       decimal.Decimal
	adjustments decimal.Decimal
}

func (t currencyTotals) total() decimal.Decimal {
	return t.consumption.Add(t.taxes).Add(t.adjustments)
}

// Reconcile compares the itemized lines of a statement against the totals
// the issuer declared, per currency. Sums are exact decimal arithmetic; the
// difference is declared minus computed, so a positive difference means the
// issuer charged more than the items explain. Currencies with no declared
// total and no items are left out of the report entirely.
func Reconcile(items []*entity.StatementItem, declaredARS, declaredUSD decimal.Decimal, tolerance valueobject.ToleranceConfig) *valueobject.ReconciliationReport {
	computed := map[entity.Currency]*currencyTotals{
		entity.CurrencyARS: {},
		entity.CurrencyUSD: {},
	}
	for _, item := range items {
		totals, ok := computed[item.Currency]
		if !ok {
			continue
		}
		switch item.Kind {
		case entity.ItemKindConsumption, entity.ItemKindInstallment:
			totals.consumption = totals.consumption.Add(item.Amount)
		case entity.ItemKindTax:
			totals.taxes = totals.taxes.Add(item.Amount)
		case entity.ItemKindAdjustment:
			totals.adjustments = totals.adjustments.Add(item.Amount)
		}
	}

	declared := map[entity.Currency]decimal.Decimal{
		entity.CurrencyARS: declaredARS,
		entity.CurrencyUSD: declaredUSD,
	}

	report := &valueobject.ReconciliationReport{}
	for _, currency := range []entity.Currency{entity.CurrencyARS, entity.CurrencyUSD} {
		totals := computed[currency]
		computedTotal := totals.total()
		declaredTotal := declared[currency]
		if computedTotal.IsZero() && declaredTotal.IsZero() {
			continue
		}

		difference := declaredTotal.Sub(computedTotal)
		status, severity := valueobject.ClassifyDifference(difference, tolerance)
		report.Currencies = append(report.Currencies, valueobject.CurrencyReconciliation{
			Currency:            currency,
			ComputedConsumption: totals.consumption,
			ComputedTaxes:       totals.taxes,
			ComputedAdjustments: totals.adjustments,
			ComputedTotal:       computedTotal,
			DeclaredTotal:       declaredTotal,
			Difference:          difference,
			Status:              status,
			Severity:            severity,
		})
	}
	return report
}

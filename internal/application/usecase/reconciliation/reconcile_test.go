// Package reconciliation contains the statement reconciliation use cases.
package reconciliation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

func item(kind entity.StatementItemKind, currency entity.Currency, amount float64) *entity.StatementItem {
	return &entity.StatementItem{
		ID:       uuid.New(),
		Kind:     kind,
		Amount:   decimal.NewFromFloat(amount),
		Currency: currency,
	}
}

func TestReconcile(t *testing.T) {
	tolerance := valueobject.DefaultToleranceConfig()

	t.Run("matching statement reconciles", func(t *testing.T) {
		items := []*entity.StatementItem{
			item(entity.ItemKindConsumption, entity.CurrencyARS, 80000),
			item(entity.ItemKindInstallment, entity.CurrencyARS, 15000),
			item(entity.ItemKindTax, entity.CurrencyARS, 19500),
			item(entity.ItemKindAdjustment, entity.CurrencyARS, -500),
		}
		report := Reconcile(items, decimal.NewFromInt(114000), decimal.Zero, tolerance)

		if len(report.Currencies) != 1 {
			t.Fatalf("expected 1 currency, got %d", len(report.Currencies))
		}
		ars := report.Currencies[0]
		if ars.Status != valueobject.StatusMatched {
			t.Errorf("expected %q, got %q", valueobject.StatusMatched, ars.Status)
		}
		if !ars.Difference.IsZero() {
			t.Errorf("expected zero difference, got %s", ars.Difference)
		}
		if report.HasMismatch() {
			t.Error("expected no mismatch")
		}
	})

	t.Run("missing items show up as a negative difference", func(t *testing.T) {
		items := []*entity.StatementItem{
			item(entity.ItemKindConsumption, entity.CurrencyARS, 80000),
			item(entity.ItemKindTax, entity.CurrencyARS, 20500),
		}
		report := Reconcile(items, decimal.NewFromInt(100000), decimal.Zero, tolerance)

		ars, ok := report.ForCurrency(entity.CurrencyARS)
		if !ok {
			t.Fatal("expected an ARS reconciliation")
		}
		if !ars.Difference.Equal(decimal.NewFromInt(-500)) {
			t.Errorf("expected difference -500, got %s", ars.Difference)
		}
		if ars.Status != "Diferencia de -500" {
			t.Errorf("unexpected status %q", ars.Status)
		}
		if ars.Severity != valueobject.SeverityMajor {
			t.Errorf("expected major severity, got %s", ars.Severity)
		}
		if !report.HasMismatch() {
			t.Error("expected a mismatch")
		}
	})

	t.Run("sub unit rounding noise still matches", func(t *testing.T) {
		items := []*entity.StatementItem{
			item(entity.ItemKindConsumption, entity.CurrencyARS, 99999.40),
		}
		report := Reconcile(items, decimal.NewFromInt(100000), decimal.Zero, tolerance)

		ars := report.Currencies[0]
		if ars.Severity != valueobject.SeverityMatched {
			t.Errorf("expected matched, got %s (difference %s)", ars.Severity, ars.Difference)
		}
	})

	t.Run("small differences band as minor", func(t *testing.T) {
		items := []*entity.StatementItem{
			item(entity.ItemKindConsumption, entity.CurrencyARS, 99950),
		}
		report := Reconcile(items, decimal.NewFromInt(100000), decimal.Zero, tolerance)

		if report.Currencies[0].Severity != valueobject.SeverityMinor {
			t.Errorf("expected minor severity, got %s", report.Currencies[0].Severity)
		}
	})

	t.Run("currencies with no movement are omitted", func(t *testing.T) {
		items := []*entity.StatementItem{
			item(entity.ItemKindConsumption, entity.CurrencyARS, 50000),
		}
		report := Reconcile(items, decimal.NewFromInt(50000), decimal.Zero, tolerance)

		if _, ok := report.ForCurrency(entity.CurrencyUSD); ok {
			t.Error("expected USD to be omitted when there is nothing to compare")
		}
	})

	t.Run("currencies reconcile independently", func(t *testing.T) {
		items := []*entity.StatementItem{
			item(entity.ItemKindConsumption, entity.CurrencyARS, 50000),
			item(entity.ItemKindConsumption, entity.CurrencyUSD, 120),
			item(entity.ItemKindTax, entity.CurrencyUSD, 5.50),
		}
		report := Reconcile(items, decimal.NewFromInt(50000), decimal.NewFromFloat(125.50), tolerance)

		if len(report.Currencies) != 2 {
			t.Fatalf("expected 2 currencies, got %d", len(report.Currencies))
		}
		if report.HasMismatch() {
			t.Error("expected both currencies to reconcile")
		}
	})

	t.Run("declared total with no items is a mismatch", func(t *testing.T) {
		report := Reconcile(nil, decimal.Zero, decimal.NewFromInt(200), tolerance)

		usd, ok := report.ForCurrency(entity.CurrencyUSD)
		if !ok {
			t.Fatal("expected a USD reconciliation")
		}
		if !usd.Difference.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected difference 200, got %s", usd.Difference)
		}
		if usd.Severity != valueobject.SeverityMajor {
			t.Errorf("expected major severity, got %s", usd.Severity)
		}
	})

	t.Run("difference is exactly declared minus computed", func(t *testing.T) {
		items := []*entity.StatementItem{
			item(entity.ItemKindConsumption, entity.CurrencyARS, 33333.33),
			item(entity.ItemKindTax, entity.CurrencyARS, 6666.67),
		}
		declared := decimal.NewFromFloat(40000.05)
		report := Reconcile(items, declared, decimal.Zero, tolerance)

		ars := report.Currencies[0]
		if !ars.Difference.Equal(declared.Sub(ars.ComputedTotal)) {
			t.Errorf("difference %s is not declared %s minus computed %s",
				ars.Difference, declared, ars.ComputedTotal)
		}
		if !ars.ComputedTotal.Equal(decimal.NewFromInt(40000)) {
			t.Errorf("expected exact computed total 40000, got %s", ars.ComputedTotal)
		}
	})
}

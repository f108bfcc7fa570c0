package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// StatusMatched is the reconciliation status when computed and declared
// totals agree within tolerance.
const StatusMatched = "Conciliado"

// ReconciliationSeverity bands a reconciliation difference for triage.
type ReconciliationSeverity string

const (
	// SeverityMatched means the difference is within the matching epsilon.
	SeverityMatched ReconciliationSeverity = "matched"
	// SeverityMinor means a small difference, typically rounding or
	// currency-conversion noise.
	SeverityMinor ReconciliationSeverity = "minor"
	// SeverityMajor means a relevant difference, likely an unclassified
	// adjustment; flagged for manual review.
	SeverityMajor ReconciliationSeverity = "major"
)

// ToleranceConfig holds the reconciliation tolerance bands, in absolute
// units of the currency under comparison.
type ToleranceConfig struct {
	// Epsilon is the maximum absolute difference still considered matched.
	Epsilon decimal.Decimal
	// MinorThreshold is the upper bound of the minor-difference band.
	MinorThreshold decimal.Decimal
}

// DefaultToleranceConfig returns the tolerance bands observed in
// production: matched under 1 currency unit, minor under 100.
func DefaultToleranceConfig() ToleranceConfig {
	return ToleranceConfig{
		Epsilon:        decimal.NewFromInt(1),
		MinorThreshold: decimal.NewFromInt(100),
	}
}

// ClassifyDifference maps a declared-minus-computed difference to the
// user-visible status and its severity band.
func ClassifyDifference(difference decimal.Decimal, tolerance ToleranceConfig) (string, ReconciliationSeverity) {
	abs := difference.Abs()
	if abs.LessThan(tolerance.Epsilon) {
		return StatusMatched, SeverityMatched
	}

	status := "Diferencia de " + difference.String()
	if abs.LessThan(tolerance.MinorThreshold) {
		return status, SeverityMinor
	}
	return status, SeverityMajor
}

// CurrencyReconciliation is the comparison of computed versus declared
// totals for one currency of one statement.
type CurrencyReconciliation struct {
	Currency            entity.Currency        `json:"currency"`
	ComputedConsumption decimal.Decimal        `json:"computed_consumption"`
	ComputedTaxes       decimal.Decimal        `json:"computed_taxes"`
	ComputedAdjustments decimal.Decimal        `json:"computed_adjustments"`
	ComputedTotal       decimal.Decimal        `json:"computed_total"`
	DeclaredTotal       decimal.Decimal        `json:"declared_total"`
	Difference          decimal.Decimal        `json:"difference"`
	Status              string                 `json:"status"`
	Severity            ReconciliationSeverity `json:"severity"`
}

// IsMatched reports whether the currency reconciled within the epsilon.
func (c *CurrencyReconciliation) IsMatched() bool {
	return c.Severity == SeverityMatched
}

// ReconciliationReport holds the per-currency reconciliation of one
// statement. Currencies with neither declared nor computed movements are
// omitted rather than reported as matched.
type ReconciliationReport struct {
	Currencies []CurrencyReconciliation `json:"currencies"`
}

// HasMismatch reports whether any currency failed to reconcile.
func (r *ReconciliationReport) HasMismatch() bool {
	for _, c := range r.Currencies {
		if !c.IsMatched() {
			return true
		}
	}
	return false
}

// ForCurrency returns the reconciliation for a currency, if present.
func (r *ReconciliationReport) ForCurrency(currency entity.Currency) (*CurrencyReconciliation, bool) {
	for i := range r.Currencies {
		if r.Currencies[i].Currency == currency {
			return &r.Currencies[i], true
		}
	}
	return nil, false
}

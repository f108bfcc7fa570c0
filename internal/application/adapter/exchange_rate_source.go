package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExchangeRateSource provides the USD to reporting-currency rate for a
// named quote source (e.g. "blue", "oficial").
type ExchangeRateSource interface {
	// GetRate returns the current rate for the source. A missing rate
	// record is an error; callers fall back to a configured default
	// instead of failing the whole analysis.
	GetRate(ctx context.Context, source string) (decimal.Decimal, error)
}

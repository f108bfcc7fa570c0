package insights

import (
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
)

// converter normalizes amounts into the reporting currency using a fixed
// ARS-per-USD rate captured at the start of the run. Keeping the rate
// in the struct makes a full analysis internally consistent even if the
// quote moves mid-run.
type converter struct {
	reporting entity.Currency
	usdRate   decimal.Decimal
}

func newConverter(reporting entity.Currency, usdRate decimal.Decimal) (*converter, error) {
	if usdRate.LessThanOrEqual(decimal.Zero) {
		return nil, domainerror.NewAnalysisError(domainerror.ErrCodeInvalidRate,
			"exchange rate must be positive", domainerror.ErrInvalidRate)
	}
	return &converter{reporting: reporting, usdRate: usdRate}, nil
}

// Normalize converts amount from the given currency into the reporting
// currency. Same-currency amounts pass through untouched.
func (c *converter) Normalize(amount decimal.Decimal, currency entity.Currency) (decimal.Decimal, error) {
	if currency == c.reporting {
		return amount, nil
	}
	switch {
	case currency == entity.CurrencyUSD && c.reporting == entity.CurrencyARS:
		return amount.Mul(c.usdRate), nil
	case currency == entity.CurrencyARS && c.reporting == entity.CurrencyUSD:
		return amount.Div(c.usdRate), nil
	default:
		return decimal.Zero, domainerror.NewAnalysisError(domainerror.ErrCodeUnsupportedCurrency,
			"cannot convert "+string(currency)+" to "+string(c.reporting), domainerror.ErrUnsupportedCurrency)
	}
}

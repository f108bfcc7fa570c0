package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/persistence/model"
)

// exchangeRateRepository implements adapter.ExchangeRateSource on top of the
// exchange_rates table.
type exchangeRateRepository struct {
	db *gorm.DB
}

// NewExchangeRateRepository creates a new exchange rate repository instance.
func NewExchangeRateRepository(db *gorm.DB) adapter.ExchangeRateSource {
	return &exchangeRateRepository{
		db: db,
	}
}

// GetRate returns the newest observed rate for the source.
func (r *exchangeRateRepository) GetRate(ctx context.Context, source string) (decimal.Decimal, error) {
	var rateModel model.ExchangeRateModel
	result := r.db.WithContext(ctx).
		Where("source = ?", source).
		Order("observed_at DESC").
		First(&rateModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("no rate recorded for source %q", source)
		}
		return decimal.Zero, result.Error
	}
	return rateModel.Rate, nil
}

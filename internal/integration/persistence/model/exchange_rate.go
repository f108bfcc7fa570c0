package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateModel represents the exchange_rates table in the database.
// One row per quote observation; the newest row per source wins.
type ExchangeRateModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Source     string          `gorm:"type:varchar(20);not null;index"`
	Rate       decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	ObservedAt time.Time       `gorm:"not null;index"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExchangeRateModel.
func (ExchangeRateModel) TableName() string {
	return "exchange_rates"
}

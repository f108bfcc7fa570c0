// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"type:varchar(10);not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'ARS'"`
	Category      string          `gorm:"type:varchar(100);not null;index"`
	Description   string          `gorm:"type:varchar(255)"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	PaymentMethod string          `gorm:"type:varchar(50)"`

	// StatementImportID links card payment transactions back to the
	// statement import that created them.
	StatementImportID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                m.ID,
		UserID:            m.UserID,
		Type:              entity.TransactionType(m.Type),
		Amount:            m.Amount,
		Currency:          entity.Currency(m.Currency),
		Category:          m.Category,
		Description:       m.Description,
		Date:              m.Date,
		PaymentMethod:     m.PaymentMethod,
		StatementImportID: m.StatementImportID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                transaction.ID,
		UserID:            transaction.UserID,
		Type:              string(transaction.Type),
		Amount:            transaction.Amount,
		Currency:          string(transaction.Currency),
		Category:          transaction.Category,
		Description:       transaction.Description,
		Date:              transaction.Date,
		PaymentMethod:     transaction.PaymentMethod,
		StatementImportID: transaction.StatementImportID,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
	}
}

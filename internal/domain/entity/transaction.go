// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Currency is the ISO-4217 code of a monetary amount. The system only deals
// in the reporting currency (ARS) and USD.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

// CardPaymentCategory is the reserved category name for transactions that
// represent the aggregate monthly payment of a credit card statement. Such a
// transaction carries the whole bill as a single cash movement; consumption
// analysis must skip it, since the statement's itemized lines take its place.
const CardPaymentCategory = "Tarjeta"

// Transaction represents a single financial movement recorded by a user.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Type              TransactionType
	Amount            decimal.Decimal // Always >= 0; Type carries the direction
	Currency          Currency
	Category          string
	Description       string
	Date              time.Time
	PaymentMethod     string     // Optional
	StatementImportID *uuid.UUID // Set on CardPaymentCategory transactions created by statement import
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	currency Currency,
	category string,
	description string,
	date time.Time,
	paymentMethod string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          transactionType,
		Amount:        amount,
		Currency:      currency,
		Category:      category,
		Description:   description,
		Date:          date,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsCardPayment reports whether the transaction is a credit card statement
// payment summary rather than an individual purchase.
func (t *Transaction) IsCardPayment() bool {
	return t.Category == CardPaymentCategory
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

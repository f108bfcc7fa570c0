package insights

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

func expenseTx(category, description string, amount float64, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Type:     entity.TransactionTypeExpense,
		Amount:   decimal.NewFromFloat(amount),
		Currency: entity.CurrencyARS,
		Category: category, Description: description,
		Date: date,
	}
}

func usdTx(category, description string, amount float64, date time.Time) *entity.Transaction {
	tx := expenseTx(category, description, amount, date)
	tx.Currency = entity.CurrencyUSD
	return tx
}

func cardPaymentTx(amount float64, date time.Time) *entity.Transaction {
	return expenseTx(entity.CardPaymentCategory, "Pago resumen Visa", amount, date)
}

func statementRecord(billingMonth time.Time, items ...*entity.StatementItem) StatementRecord {
	imp := &entity.StatementImport{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		StatementMonth: billingMonth,
		Status:         entity.StatementStatusCompleted,
	}
	for _, item := range items {
		item.StatementImportID = imp.ID
	}
	return StatementRecord{Import: imp, Items: items}
}

func consumptionItem(category, description string, amount float64, date *time.Time) *entity.StatementItem {
	return &entity.StatementItem{
		ID:           uuid.New(),
		Kind:         entity.ItemKindConsumption,
		Description:  description,
		Amount:       decimal.NewFromFloat(amount),
		Currency:     entity.CurrencyARS,
		CategoryName: category,
		Date:         date,
	}
}

func taxItem(description string, amount float64) *entity.StatementItem {
	return &entity.StatementItem{
		ID:          uuid.New(),
		Kind:        entity.ItemKindTax,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Currency:    entity.CurrencyARS,
	}
}

func testConverter() *converter {
	conv, err := newConverter(entity.CurrencyARS, decimal.NewFromInt(1200))
	if err != nil {
		panic(err)
	}
	return conv
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementItemKind classifies one extracted line of a credit card statement.
type StatementItemKind string

const (
	ItemKindConsumption StatementItemKind = "consumo"
	ItemKindInstallment StatementItemKind = "cuota"
	ItemKindTax         StatementItemKind = "impuesto"
	ItemKindAdjustment  StatementItemKind = "ajuste"
)

// StatementStatus tracks the lifecycle of an imported statement.
type StatementStatus string

const (
	StatementStatusPending   StatementStatus = "pending"
	StatementStatusCompleted StatementStatus = "completed"
	StatementStatusFailed    StatementStatus = "failed"
)

// StatementImport is the metadata of one imported card statement period.
type StatementImport struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FileName       string
	StatementMonth time.Time // First day of the billing month
	ClosingDate    *time.Time
	DueDate        *time.Time
	DeclaredARS    decimal.Decimal // Total declared by the issuer in ARS
	DeclaredUSD    decimal.Decimal // Total declared by the issuer in USD
	Status         StatementStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PaymentMonth returns the month the statement is paid: the billing month
// plus one calendar month. Itemized consumptions are attributed to this
// month so that "consumption" lines up with when money leaves the account.
func (s *StatementImport) PaymentMonth() time.Time {
	return s.StatementMonth.AddDate(0, 1, 0)
}

// StatementItem is one itemized line extracted from a statement.
type StatementItem struct {
	ID                 uuid.UUID
	StatementImportID  uuid.UUID
	Kind               StatementItemKind
	Description        string
	Amount             decimal.Decimal // Signed; negative for refunds and bonifications
	Currency           Currency
	CategoryName       string // Resolved display name, or "Sin categoría"
	Date               *time.Time
	InstallmentCurrent *int
	InstallmentTotal   *int
}

// UncategorizedName is the display category for items the extractor could
// not map to a known category.
const UncategorizedName = "Sin categoría"

// ExtractedLine is one raw line produced by the statement extractor before
// it is persisted. Missing numeric fields have already been coerced to zero
// by the extraction boundary; a bad line must not reject the statement.
type ExtractedLine struct {
	Date               *time.Time
	Description        string
	Amount             decimal.Decimal
	Currency           Currency
	InstallmentCurrent *int
	InstallmentTotal   *int
}

// ExtractedStatement is the structured output of the statement extractor
// for one PDF: itemized lines split by kind plus the declared summary.
type ExtractedStatement struct {
	Consumptions []ExtractedLine
	Installments []ExtractedLine
	Taxes        []ExtractedLine
	Adjustments  []ExtractedLine

	DeclaredARS decimal.Decimal
	DeclaredUSD decimal.Decimal
	ClosingDate *time.Time
	DueDate     *time.Time
}

// TotalItems returns the number of extracted lines across all kinds.
func (e *ExtractedStatement) TotalItems() int {
	return len(e.Consumptions) + len(e.Installments) + len(e.Taxes) + len(e.Adjustments)
}

package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// StatementImportModel represents the statement_imports table in the database.
type StatementImportModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	FileName       string          `gorm:"type:varchar(255);not null"`
	StatementMonth time.Time       `gorm:"type:date;not null;index"`
	ClosingDate    *time.Time      `gorm:"type:date"`
	DueDate        *time.Time      `gorm:"type:date"`
	DeclaredARS    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DeclaredUSD    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Status         string          `gorm:"type:varchar(20);not null;default:'pending';index"`

	// Reconciliation holds the serialized reconciliation report. Stored
	// with the import so the alert surface never recomputes it.
	Reconciliation string `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the StatementImportModel.
func (StatementImportModel) TableName() string {
	return "statement_imports"
}

// ToEntity converts a StatementImportModel to a domain StatementImport entity.
func (m *StatementImportModel) ToEntity() *entity.StatementImport {
	return &entity.StatementImport{
		ID:             m.ID,
		UserID:         m.UserID,
		FileName:       m.FileName,
		StatementMonth: m.StatementMonth,
		ClosingDate:    m.ClosingDate,
		DueDate:        m.DueDate,
		DeclaredARS:    m.DeclaredARS,
		DeclaredUSD:    m.DeclaredUSD,
		Status:         entity.StatementStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// Report deserializes the stored reconciliation report, nil when absent.
func (m *StatementImportModel) Report() *valueobject.ReconciliationReport {
	if m.Reconciliation == "" {
		return nil
	}
	var report valueobject.ReconciliationReport
	if err := json.Unmarshal([]byte(m.Reconciliation), &report); err != nil {
		slog.Warn("failed to unmarshal reconciliation report", "statementID", m.ID, "error", err)
		return nil
	}
	return &report
}

// StatementImportFromEntity creates a StatementImportModel from a domain
// entity and its reconciliation report.
func StatementImportFromEntity(statement *entity.StatementImport, report *valueobject.ReconciliationReport) *StatementImportModel {
	m := &StatementImportModel{
		ID:             statement.ID,
		UserID:         statement.UserID,
		FileName:       statement.FileName,
		StatementMonth: statement.StatementMonth,
		ClosingDate:    statement.ClosingDate,
		DueDate:        statement.DueDate,
		DeclaredARS:    statement.DeclaredARS,
		DeclaredUSD:    statement.DeclaredUSD,
		Status:         string(statement.Status),
		CreatedAt:      statement.CreatedAt,
		UpdatedAt:      statement.UpdatedAt,
	}
	if report != nil {
		data, err := json.Marshal(report)
		if err != nil {
			slog.Error("failed to marshal reconciliation report", "statementID", statement.ID, "error", err)
		} else {
			m.Reconciliation = string(data)
		}
	}
	return m
}

// StatementItemModel represents the statement_items table in the database.
type StatementItemModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StatementImportID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind               string          `gorm:"type:varchar(10);not null;index"`
	Description        string          `gorm:"type:varchar(255);not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency           string          `gorm:"type:varchar(3);not null;default:'ARS'"`
	CategoryName       string          `gorm:"type:varchar(100)"`
	Date               *time.Time      `gorm:"type:date"`
	InstallmentCurrent *int            `gorm:"type:integer"`
	InstallmentTotal   *int            `gorm:"type:integer"`

	StatementImport *StatementImportModel `gorm:"foreignKey:StatementImportID;references:ID"`
}

// TableName returns the table name for the StatementItemModel.
func (StatementItemModel) TableName() string {
	return "statement_items"
}

// ToEntity converts a StatementItemModel to a domain StatementItem entity.
func (m *StatementItemModel) ToEntity() *entity.StatementItem {
	return &entity.StatementItem{
		ID:                 m.ID,
		StatementImportID:  m.StatementImportID,
		Kind:               entity.StatementItemKind(m.Kind),
		Description:        m.Description,
		Amount:             m.Amount,
		Currency:           entity.Currency(m.Currency),
		CategoryName:       m.CategoryName,
		Date:               m.Date,
		InstallmentCurrent: m.InstallmentCurrent,
		InstallmentTotal:   m.InstallmentTotal,
	}
}

// StatementItemFromEntity creates a StatementItemModel from a domain entity.
func StatementItemFromEntity(item *entity.StatementItem) *StatementItemModel {
	return &StatementItemModel{
		ID:                 item.ID,
		StatementImportID:  item.StatementImportID,
		Kind:               string(item.Kind),
		Description:        item.Description,
		Amount:             item.Amount,
		Currency:           string(item.Currency),
		CategoryName:       item.CategoryName,
		Date:               item.Date,
		InstallmentCurrent: item.InstallmentCurrent,
		InstallmentTotal:   item.InstallmentTotal,
	}
}

package dto

import (
	"time"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/statement"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// ImportStatementRequest represents the request body for statement import.
type ImportStatementRequest struct {
	FilePath       string `json:"file_path" binding:"required"`
	FileName       string `json:"file_name" binding:"required"`
	StatementMonth string `json:"statement_month" binding:"required"`
}

// ImportStatementResponse represents the result of a statement import.
type ImportStatementResponse struct {
	StatementID           string                  `json:"statement_id"`
	Status                string                  `json:"status"`
	ItemsImported         int                     `json:"items_imported"`
	Reconciliation        *ReconciliationResponse `json:"reconciliation"`
	PaymentTransactionIDs []string                `json:"payment_transaction_ids"`
}

// StatementItemResponse represents one itemized statement line.
type StatementItemResponse struct {
	ID                 string  `json:"id"`
	Kind               string  `json:"kind"`
	Description        string  `json:"description"`
	Amount             string  `json:"amount"`
	Currency           string  `json:"currency"`
	Category           string  `json:"category"`
	Date               *string `json:"date,omitempty"`
	InstallmentCurrent *int    `json:"installment_current,omitempty"`
	InstallmentTotal   *int    `json:"installment_total,omitempty"`
}

// StatementResponse represents a statement import in API responses.
type StatementResponse struct {
	ID             string                  `json:"id"`
	FileName       string                  `json:"file_name"`
	StatementMonth string                  `json:"statement_month"`
	ClosingDate    *string                 `json:"closing_date,omitempty"`
	DueDate        *string                 `json:"due_date,omitempty"`
	DeclaredARS    string                  `json:"declared_ars"`
	DeclaredUSD    string                  `json:"declared_usd"`
	Status         string                  `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	Items          []StatementItemResponse `json:"items,omitempty"`
	Reconciliation *ReconciliationResponse `json:"reconciliation,omitempty"`
}

// StatementListResponse represents the response for listing statements.
type StatementListResponse struct {
	Statements []StatementResponse `json:"statements"`
}

func formatMonth(t time.Time) string {
	return t.Format("2006-01")
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02")
	return &formatted
}

// ToStatementItemResponse converts a StatementItem entity to its response DTO.
func ToStatementItemResponse(item *entity.StatementItem) StatementItemResponse {
	return StatementItemResponse{
		ID:                 item.ID.String(),
		Kind:               string(item.Kind),
		Description:        item.Description,
		Amount:             item.Amount.String(),
		Currency:           string(item.Currency),
		Category:           item.CategoryName,
		Date:               formatDatePtr(item.Date),
		InstallmentCurrent: item.InstallmentCurrent,
		InstallmentTotal:   item.InstallmentTotal,
	}
}

// ToStatementResponse converts a GetStatementOutput to StatementResponse.
func ToStatementResponse(output *statement.GetStatementOutput) StatementResponse {
	response := StatementResponse{
		ID:             output.Statement.ID.String(),
		FileName:       output.Statement.FileName,
		StatementMonth: formatMonth(output.Statement.StatementMonth),
		ClosingDate:    formatDatePtr(output.Statement.ClosingDate),
		DueDate:        formatDatePtr(output.Statement.DueDate),
		DeclaredARS:    output.Statement.DeclaredARS.String(),
		DeclaredUSD:    output.Statement.DeclaredUSD.String(),
		Status:         string(output.Statement.Status),
		CreatedAt:      output.Statement.CreatedAt,
	}

	for _, item := range output.Items {
		response.Items = append(response.Items, ToStatementItemResponse(item))
	}

	if output.Report != nil {
		report := ToReconciliationResponse(output.Report)
		response.Reconciliation = &report
	}

	return response
}

// ToStatementListResponse converts a ListStatementsOutput to StatementListResponse.
func ToStatementListResponse(output *statement.ListStatementsOutput) StatementListResponse {
	statements := make([]StatementResponse, 0, len(output.Statements))
	for _, s := range output.Statements {
		statements = append(statements, StatementResponse{
			ID:             s.ID.String(),
			FileName:       s.FileName,
			StatementMonth: formatMonth(s.StatementMonth),
			ClosingDate:    formatDatePtr(s.ClosingDate),
			DueDate:        formatDatePtr(s.DueDate),
			DeclaredARS:    s.DeclaredARS.String(),
			DeclaredUSD:    s.DeclaredUSD.String(),
			Status:         string(s.Status),
			CreatedAt:      s.CreatedAt,
		})
	}
	return StatementListResponse{Statements: statements}
}

// ToImportStatementResponse converts an ImportStatementOutput to its response DTO.
func ToImportStatementResponse(output *statement.ImportStatementOutput) ImportStatementResponse {
	paymentIDs := make([]string, 0, len(output.PaymentTransactionIDs))
	for _, id := range output.PaymentTransactionIDs {
		paymentIDs = append(paymentIDs, id.String())
	}

	response := ImportStatementResponse{
		StatementID:           output.StatementID.String(),
		Status:                string(output.Status),
		ItemsImported:         output.ItemsImported,
		PaymentTransactionIDs: paymentIDs,
	}

	if output.Report != nil {
		report := ToReconciliationResponse(output.Report)
		response.Reconciliation = &report
	}

	return response
}

package dto

import (
	"time"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/transaction"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type          string  `json:"type" binding:"required,oneof=expense income"`
	Amount        float64 `json:"amount" binding:"required"`
	Currency      string  `json:"currency,omitempty" binding:"omitempty,oneof=ARS USD"`
	Category      string  `json:"category" binding:"required,min=1,max=100"`
	Description   string  `json:"description,omitempty" binding:"omitempty,max=255"`
	Date          string  `json:"date" binding:"required"`
	PaymentMethod string  `json:"payment_method,omitempty" binding:"omitempty,max=50"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Type              string    `json:"type"`
	Amount            string    `json:"amount"`
	Currency          string    `json:"currency"`
	Category          string    `json:"category"`
	Description       string    `json:"description"`
	Date              string    `json:"date"`
	PaymentMethod     string    `json:"payment_method,omitempty"`
	StatementImportID *string   `json:"statement_import_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a Transaction entity to its response DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:            txn.ID.String(),
		UserID:        txn.UserID.String(),
		Type:          string(txn.Type),
		Amount:        txn.Amount.String(),
		Currency:      string(txn.Currency),
		Category:      txn.Category,
		Description:   txn.Description,
		Date:          txn.Date.Format("2006-01-02"),
		PaymentMethod: txn.PaymentMethod,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}

	if txn.StatementImportID != nil {
		id := txn.StatementImportID.String()
		response.StatementImportID = &id
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	}
}

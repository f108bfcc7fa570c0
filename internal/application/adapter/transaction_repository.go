// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Category  string
	Search    string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// List retrieves transactions matching the filter with pagination,
	// ordered by date descending.
	List(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// FindForAnalysis retrieves a user's transactions of the given type
	// dated on or after since, ordered by date descending, capped at limit.
	FindForAnalysis(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, since time.Time, limit int) ([]*entity.Transaction, error)

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

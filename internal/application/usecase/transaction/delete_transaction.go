package transaction

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
)

// DeleteTransactionInput represents the input for deleting a transaction.
type DeleteTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute deletes the transaction after checking ownership.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	tx, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				err,
			)
		}
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionInternalError,
			"failed to load transaction",
			err,
		)
	}
	if tx == nil || tx.UserID != input.UserID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeUnauthorizedTransaction,
			"transaction belongs to another user",
			domainerror.ErrUnauthorizedTransaction,
		)
	}

	if err := uc.transactionRepo.Delete(ctx, input.TransactionID); err != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionInternalError,
			"failed to delete transaction",
			err,
		)
	}

	slog.Debug("transaction deleted", "transactionID", input.TransactionID)
	return nil
}

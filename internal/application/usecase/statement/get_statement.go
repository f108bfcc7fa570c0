package statement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// GetStatementInput represents the input for fetching one statement import.
type GetStatementInput struct {
	UserID      uuid.UUID
	StatementID uuid.UUID
	// WithItems includes the itemized lines in the output.
	WithItems bool
}

// GetStatementOutput represents one statement import with its details.
type GetStatementOutput struct {
	Statement *entity.StatementImport           `json:"statement"`
	Items     []*entity.StatementItem           `json:"items,omitempty"`
	Report    *valueobject.ReconciliationReport `json:"reconciliation,omitempty"`
}

// GetStatementUseCase fetches a statement import with its reconciliation.
type GetStatementUseCase struct {
	statementRepo adapter.StatementRepository
}

// NewGetStatementUseCase creates a new GetStatementUseCase instance.
func NewGetStatementUseCase(statementRepo adapter.StatementRepository) *GetStatementUseCase {
	return &GetStatementUseCase{statementRepo: statementRepo}
}

// Execute fetches the statement, enforcing ownership.
func (uc *GetStatementUseCase) Execute(ctx context.Context, input GetStatementInput) (*GetStatementOutput, error) {
	statement, err := uc.statementRepo.FindByID(ctx, input.StatementID)
	if err != nil {
		if errors.Is(err, domainerror.ErrStatementNotFound) {
			return nil, domainerror.NewStatementError(
				domainerror.ErrCodeStatementNotFound, "statement import not found", err)
		}
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementInternalError, "failed to load statement import", err)
	}
	if statement == nil || statement.UserID != input.UserID {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementNotFound,
			"statement import not found",
			domainerror.ErrStatementNotFound,
		)
	}

	output := &GetStatementOutput{Statement: statement}

	if input.WithItems {
		items, err := uc.statementRepo.FindItems(ctx, []uuid.UUID{statement.ID})
		if err != nil {
			return nil, domainerror.NewStatementError(
				domainerror.ErrCodeStatementInternalError, "failed to load statement items", err)
		}
		output.Items = items
	}

	report, err := uc.statementRepo.FindReport(ctx, statement.ID)
	if err != nil && !errors.Is(err, domainerror.ErrStatementNotFound) {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementInternalError, "failed to load reconciliation report", err)
	}
	output.Report = report

	return output, nil
}

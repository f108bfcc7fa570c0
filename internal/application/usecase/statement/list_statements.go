package statement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
)

// ListStatementsInput represents the input for listing statement imports.
type ListStatementsInput struct {
	UserID uuid.UUID
	// Months limits the listing window; zero means everything.
	Months int
}

// ListStatementsOutput represents the user's statement imports.
type ListStatementsOutput struct {
	Statements []*entity.StatementImport `json:"statements"`
}

// ListStatementsUseCase lists a user's statement imports.
type ListStatementsUseCase struct {
	statementRepo adapter.StatementRepository
	now           func() time.Time
}

// NewListStatementsUseCase creates a new ListStatementsUseCase instance.
func NewListStatementsUseCase(statementRepo adapter.StatementRepository) *ListStatementsUseCase {
	return &ListStatementsUseCase{
		statementRepo: statementRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Execute lists the statements, most recent billing month first.
func (uc *ListStatementsUseCase) Execute(ctx context.Context, input ListStatementsInput) (*ListStatementsOutput, error) {
	var since time.Time
	if input.Months > 0 {
		now := uc.now()
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, -(input.Months - 1), 0)
	}

	statements, err := uc.statementRepo.ListByUser(ctx, input.UserID, since)
	if err != nil {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementInternalError, "failed to list statement imports", err)
	}
	return &ListStatementsOutput{Statements: statements}, nil
}

package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// StatementWithReport pairs a statement import with its stored
// reconciliation report (nil when the import never completed).
type StatementWithReport struct {
	Statement *entity.StatementImport
	Report    *valueobject.ReconciliationReport
}

// StatementRepository defines the interface for statement persistence operations.
type StatementRepository interface {
	// Create persists a statement import together with its items and
	// reconciliation report in one transaction.
	Create(ctx context.Context, statement *entity.StatementImport, items []*entity.StatementItem, report *valueobject.ReconciliationReport) error

	// FindByID retrieves a statement import by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.StatementImport, error)

	// FindByMonth retrieves a user's statement import for a billing month.
	FindByMonth(ctx context.Context, userID uuid.UUID, statementMonth time.Time) (*entity.StatementImport, error)

	// ListByUser retrieves a user's statement imports whose billing month is
	// on or after since, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]*entity.StatementImport, error)

	// FindItems retrieves the items of the given statement imports.
	FindItems(ctx context.Context, statementIDs []uuid.UUID) ([]*entity.StatementItem, error)

	// FindReport retrieves the stored reconciliation report of a statement.
	FindReport(ctx context.Context, statementID uuid.UUID) (*valueobject.ReconciliationReport, error)

	// ListCompletedWithReports retrieves completed imports with their stored
	// reports, most recent first, capped at limit. Used by the alert surface.
	ListCompletedWithReports(ctx context.Context, limit int) ([]*StatementWithReport, error)
}

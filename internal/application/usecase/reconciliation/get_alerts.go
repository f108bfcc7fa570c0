package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// Alert is one statement whose reconciliation did not close.
type Alert struct {
	StatementID    uuid.UUID                            `json:"statement_id"`
	FileName       string                               `json:"file_name"`
	StatementMonth time.Time                            `json:"statement_month"`
	Currencies     []valueobject.CurrencyReconciliation `json:"currencies"`
}

// GetAlertsInput represents the input for listing reconciliation alerts.
type GetAlertsInput struct {
	Limit int
}

// GetAlertsOutput represents the list of open reconciliation alerts.
type GetAlertsOutput struct {
	Alerts []Alert `json:"alerts"`
}

// GetAlertsUseCase lists the recently imported statements that failed to
// reconcile, mismatched currencies only.
type GetAlertsUseCase struct {
	statementRepository adapter.StatementRepository
}

// NewGetAlertsUseCase creates a new GetAlertsUseCase.
func NewGetAlertsUseCase(statementRepository adapter.StatementRepository) *GetAlertsUseCase {
	return &GetAlertsUseCase{statementRepository: statementRepository}
}

const defaultAlertLimit = 50

// Execute returns the open alerts, most recent statement first.
func (uc *GetAlertsUseCase) Execute(ctx context.Context, input GetAlertsInput) (*GetAlertsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultAlertLimit
	}

	withReports, err := uc.statementRepository.ListCompletedWithReports(ctx, limit)
	if err != nil {
		return nil, domainerror.NewStatementError(domainerror.ErrCodeStatementInternalError,
			"failed to load reconciliation reports", err)
	}

	alerts := make([]Alert, 0)
	for _, record := range withReports {
		if record.Report == nil || !record.Report.HasMismatch() {
			continue
		}
		var mismatched []valueobject.CurrencyReconciliation
		for _, currency := range record.Report.Currencies {
			if !currency.IsMatched() {
				mismatched = append(mismatched, currency)
			}
		}
		alerts = append(alerts, Alert{
			StatementID:    record.Statement.ID,
			FileName:       record.Statement.FileName,
			StatementMonth: record.Statement.StatementMonth,
			Currencies:     mismatched,
		})
	}
	return &GetAlertsOutput{Alerts: alerts}, nil
}

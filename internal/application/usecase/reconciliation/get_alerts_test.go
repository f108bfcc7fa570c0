package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

type fakeStatementRepo struct {
	withReports []*adapter.StatementWithReport
	gotLimit    int
	err         error
}

func (f *fakeStatementRepo) Create(ctx context.Context, statement *entity.StatementImport, items []*entity.StatementItem, report *valueobject.ReconciliationReport) error {
	return nil
}
func (f *fakeStatementRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.StatementImport, error) {
	return nil, nil
}
func (f *fakeStatementRepo) FindByMonth(ctx context.Context, userID uuid.UUID, statementMonth time.Time) (*entity.StatementImport, error) {
	return nil, nil
}
func (f *fakeStatementRepo) ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]*entity.StatementImport, error) {
	return nil, nil
}
func (f *fakeStatementRepo) FindItems(ctx context.Context, statementIDs []uuid.UUID) ([]*entity.StatementItem, error) {
	return nil, nil
}
func (f *fakeStatementRepo) FindReport(ctx context.Context, statementID uuid.UUID) (*valueobject.ReconciliationReport, error) {
	return nil, nil
}
func (f *fakeStatementRepo) ListCompletedWithReports(ctx context.Context, limit int) ([]*adapter.StatementWithReport, error) {
	f.gotLimit = limit
	return f.withReports, f.err
}

func reconciled() *valueobject.ReconciliationReport {
	return &valueobject.ReconciliationReport{Currencies: []valueobject.CurrencyReconciliation{{
		Currency: entity.CurrencyARS,
		Status:   valueobject.StatusMatched,
		Severity: valueobject.SeverityMatched,
	}}}
}

func mismatched() *valueobject.ReconciliationReport {
	return &valueobject.ReconciliationReport{Currencies: []valueobject.CurrencyReconciliation{
		{
			Currency: entity.CurrencyARS,
			Status:   valueobject.StatusMatched,
			Severity: valueobject.SeverityMatched,
		},
		{
			Currency:   entity.CurrencyUSD,
			Difference: decimal.NewFromInt(200),
			Status:     "Diferencia de 200",
			Severity:   valueobject.SeverityMajor,
		},
	}}
}

func statement(fileName string) *entity.StatementImport {
	return &entity.StatementImport{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		FileName:       fileName,
		StatementMonth: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:         entity.StatementStatusCompleted,
	}
}

func TestGetAlertsUseCase_Execute(t *testing.T) {
	t.Run("only mismatched statements alert", func(t *testing.T) {
		repo := &fakeStatementRepo{withReports: []*adapter.StatementWithReport{
			{Statement: statement("enero.pdf"), Report: reconciled()},
			{Statement: statement("febrero.pdf"), Report: mismatched()},
			{Statement: statement("marzo.pdf"), Report: nil},
		}}
		uc := NewGetAlertsUseCase(repo)

		output, err := uc.Execute(context.Background(), GetAlertsInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(output.Alerts))
		}
		alert := output.Alerts[0]
		if alert.FileName != "febrero.pdf" {
			t.Errorf("expected febrero.pdf, got %s", alert.FileName)
		}
		if len(alert.Currencies) != 1 || alert.Currencies[0].Currency != entity.CurrencyUSD {
			t.Error("expected only the mismatched currency in the alert")
		}
	})

	t.Run("limit defaults when not given", func(t *testing.T) {
		repo := &fakeStatementRepo{}
		uc := NewGetAlertsUseCase(repo)

		if _, err := uc.Execute(context.Background(), GetAlertsInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.gotLimit != defaultAlertLimit {
			t.Errorf("expected limit %d, got %d", defaultAlertLimit, repo.gotLimit)
		}
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		repo := &fakeStatementRepo{err: errors.New("connection refused")}
		uc := NewGetAlertsUseCase(repo)

		if _, err := uc.Execute(context.Background(), GetAlertsInput{}); err == nil {
			t.Fatal("expected error")
		}
	})
}

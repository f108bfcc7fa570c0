// Package statement contains statement import-related use cases.
package statement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

type fakeStatementRepo struct {
	existing      *entity.StatementImport
	created       *entity.StatementImport
	createdItems  []*entity.StatementItem
	createdReport *valueobject.ReconciliationReport
}

func (f *fakeStatementRepo) Create(ctx context.Context, statement *entity.StatementImport, items []*entity.StatementItem, report *valueobject.ReconciliationReport) error {
	f.created = statement
	f.createdItems = items
	f.createdReport = report
	return nil
}
func (f *fakeStatementRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.StatementImport, error) {
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, domainerror.ErrStatementNotFound
}
func (f *fakeStatementRepo) FindByMonth(ctx context.Context, userID uuid.UUID, statementMonth time.Time) (*entity.StatementImport, error) {
	if f.existing != nil {
		return f.existing, nil
	}
	return nil, domainerror.ErrStatementNotFound
}
func (f *fakeStatementRepo) ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]*entity.StatementImport, error) {
	return nil, nil
}
func (f *fakeStatementRepo) FindItems(ctx context.Context, statementIDs []uuid.UUID) ([]*entity.StatementItem, error) {
	return f.createdItems, nil
}
func (f *fakeStatementRepo) FindReport(ctx context.Context, statementID uuid.UUID) (*valueobject.ReconciliationReport, error) {
	return f.createdReport, nil
}
func (f *fakeStatementRepo) ListCompletedWithReports(ctx context.Context, limit int) ([]*adapter.StatementWithReport, error) {
	return nil, nil
}

type fakeTransactionRepo struct {
	created []*entity.Transaction
}

func (f *fakeTransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	f.created = append(f.created, tx)
	return nil
}
func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionRepo) List(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return nil, nil
}
func (f *fakeTransactionRepo) FindForAnalysis(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, since time.Time, limit int) ([]*entity.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeFileStore struct {
	err error
}

func (f *fakeFileStore) Download(ctx context.Context, filePath string) ([]byte, error) {
	return []byte("%PDF-1.4"), f.err
}

type fakeExtractor struct {
	available bool
	extracted *entity.ExtractedStatement
	err       error
}

func (f *fakeExtractor) IsAvailable() bool { return f.available }
func (f *fakeExtractor) Extract(ctx context.Context, pdf []byte) (*entity.ExtractedStatement, error) {
	return f.extracted, f.err
}

type fakeEmailQueue struct {
	jobs []*entity.EmailJob
}

func (f *fakeEmailQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}
func (f *fakeEmailQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	return nil, nil
}
func (f *fakeEmailQueue) Update(ctx context.Context, job *entity.EmailJob) error { return nil }
func (f *fakeEmailQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	return nil, nil
}
func (f *fakeEmailQueue) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	return nil, nil
}

func matchedStatement() *entity.ExtractedStatement {
	due := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	return &entity.ExtractedStatement{
		Consumptions: []entity.ExtractedLine{
			{Description: "NETFLIX.COM", Amount: decimal.NewFromInt(7000), Currency: entity.CurrencyARS},
			{Description: "COTO SUC 33", Amount: decimal.NewFromInt(73000), Currency: entity.CurrencyARS},
			{Description: "OPENAI CHATGPT", Amount: decimal.NewFromInt(25), Currency: entity.CurrencyUSD},
		},
		Taxes: []entity.ExtractedLine{
			{Description: "IVA 21%", Amount: decimal.NewFromInt(20000), Currency: entity.CurrencyARS},
		},
		DeclaredARS: decimal.NewFromInt(100000),
		DeclaredUSD: decimal.NewFromInt(25),
		DueDate:     &due,
	}
}

func newImportUseCase(stRepo *fakeStatementRepo, txRepo *fakeTransactionRepo, extractor *fakeExtractor, queue *fakeEmailQueue) *ImportStatementUseCase {
	return NewImportStatementUseCase(
		stRepo, txRepo, &fakeFileStore{}, extractor, queue,
		valueobject.DefaultToleranceConfig(),
	)
}

func importInput() ImportStatementInput {
	return ImportStatementInput{
		UserID:         uuid.New(),
		FilePath:       "statements/2025-12.pdf",
		FileName:       "resumen-diciembre.pdf",
		StatementMonth: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		UserEmail:      "rodo@example.com",
		UserName:       "Rodo",
	}
}

func TestImportStatementUseCase_Execute(t *testing.T) {
	t.Run("imports and reconciles a complete statement", func(t *testing.T) {
		stRepo := &fakeStatementRepo{}
		txRepo := &fakeTransactionRepo{}
		queue := &fakeEmailQueue{}
		uc := newImportUseCase(stRepo, txRepo, &fakeExtractor{available: true, extracted: matchedStatement()}, queue)

		output, err := uc.Execute(context.Background(), importInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Status != entity.StatementStatusCompleted {
			t.Errorf("expected completed status, got %s", output.Status)
		}
		if output.ItemsImported != 4 {
			t.Errorf("expected 4 items, got %d", output.ItemsImported)
		}
		if stRepo.created == nil {
			t.Fatal("expected the statement to be persisted")
		}
		ars, ok := output.Report.ForCurrency(entity.CurrencyARS)
		if !ok || !ars.IsMatched() {
			t.Error("expected ARS to reconcile")
		}
	})

	t.Run("consumption lines get categorized", func(t *testing.T) {
		stRepo := &fakeStatementRepo{}
		uc := newImportUseCase(stRepo, &fakeTransactionRepo{}, &fakeExtractor{available: true, extracted: matchedStatement()}, &fakeEmailQueue{})

		if _, err := uc.Execute(context.Background(), importInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		byDescription := map[string]string{}
		for _, item := range stRepo.createdItems {
			byDescription[item.Description] = item.CategoryName
		}
		if byDescription["NETFLIX.COM"] != "Suscripciones" {
			t.Errorf("expected Suscripciones for NETFLIX.COM, got %q", byDescription["NETFLIX.COM"])
		}
		if byDescription["COTO SUC 33"] != "Comida" {
			t.Errorf("expected Comida for COTO SUC 33, got %q", byDescription["COTO SUC 33"])
		}
		if byDescription["IVA 21%"] != entity.UncategorizedName {
			t.Errorf("expected taxes to stay uncategorized, got %q", byDescription["IVA 21%"])
		}
	})

	t.Run("creates one card payment per declared currency", func(t *testing.T) {
		txRepo := &fakeTransactionRepo{}
		uc := newImportUseCase(&fakeStatementRepo{}, txRepo, &fakeExtractor{available: true, extracted: matchedStatement()}, &fakeEmailQueue{})

		output, err := uc.Execute(context.Background(), importInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.PaymentTransactionIDs) != 2 || len(txRepo.created) != 2 {
			t.Fatalf("expected 2 payment transactions, got %d", len(txRepo.created))
		}
		for _, tx := range txRepo.created {
			if !tx.IsCardPayment() {
				t.Errorf("expected %s category, got %s", entity.CardPaymentCategory, tx.Category)
			}
			if tx.StatementImportID == nil {
				t.Error("expected the payment to link back to the statement")
			}
			if !tx.Date.Equal(time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("expected the due date as payment date, got %s", tx.Date)
			}
		}
	})

	t.Run("matched statement sends no alert", func(t *testing.T) {
		queue := &fakeEmailQueue{}
		uc := newImportUseCase(&fakeStatementRepo{}, &fakeTransactionRepo{}, &fakeExtractor{available: true, extracted: matchedStatement()}, queue)

		if _, err := uc.Execute(context.Background(), importInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(queue.jobs) != 0 {
			t.Errorf("expected no alert emails, got %d", len(queue.jobs))
		}
	})

	t.Run("mismatched statement queues an alert email", func(t *testing.T) {
		extracted := matchedStatement()
		extracted.DeclaredARS = decimal.NewFromInt(99500)
		queue := &fakeEmailQueue{}
		uc := newImportUseCase(&fakeStatementRepo{}, &fakeTransactionRepo{}, &fakeExtractor{available: true, extracted: extracted}, queue)

		output, err := uc.Execute(context.Background(), importInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Report.HasMismatch() {
			t.Fatal("expected a mismatch")
		}
		if len(queue.jobs) != 1 {
			t.Fatalf("expected 1 alert email, got %d", len(queue.jobs))
		}
		job := queue.jobs[0]
		if job.TemplateType != entity.TemplateReconciliationAlert {
			t.Errorf("unexpected template %s", job.TemplateType)
		}
		if job.RecipientEmail != "rodo@example.com" {
			t.Errorf("unexpected recipient %s", job.RecipientEmail)
		}
	})

	t.Run("missing file path is rejected", func(t *testing.T) {
		uc := newImportUseCase(&fakeStatementRepo{}, &fakeTransactionRepo{}, &fakeExtractor{available: true}, &fakeEmailQueue{})
		input := importInput()
		input.FilePath = ""

		_, err := uc.Execute(context.Background(), input)
		if !errors.Is(err, domainerror.ErrMissingFilePath) {
			t.Errorf("expected ErrMissingFilePath, got %v", err)
		}
	})

	t.Run("unavailable extractor is rejected", func(t *testing.T) {
		uc := newImportUseCase(&fakeStatementRepo{}, &fakeTransactionRepo{}, &fakeExtractor{available: false}, &fakeEmailQueue{})

		_, err := uc.Execute(context.Background(), importInput())
		if !errors.Is(err, domainerror.ErrExtractorUnavailable) {
			t.Errorf("expected ErrExtractorUnavailable, got %v", err)
		}
	})

	t.Run("duplicate month is rejected", func(t *testing.T) {
		stRepo := &fakeStatementRepo{existing: &entity.StatementImport{ID: uuid.New()}}
		uc := newImportUseCase(stRepo, &fakeTransactionRepo{}, &fakeExtractor{available: true, extracted: matchedStatement()}, &fakeEmailQueue{})

		_, err := uc.Execute(context.Background(), importInput())
		if !errors.Is(err, domainerror.ErrStatementAlreadyImported) {
			t.Errorf("expected ErrStatementAlreadyImported, got %v", err)
		}
	})

	t.Run("extraction failure surfaces without persisting", func(t *testing.T) {
		stRepo := &fakeStatementRepo{}
		uc := newImportUseCase(stRepo, &fakeTransactionRepo{}, &fakeExtractor{available: true, err: errors.New("malformed pdf")}, &fakeEmailQueue{})

		_, err := uc.Execute(context.Background(), importInput())
		if !errors.Is(err, domainerror.ErrExtractionFailed) {
			t.Errorf("expected ErrExtractionFailed, got %v", err)
		}
		if stRepo.created != nil {
			t.Error("expected nothing to be persisted")
		}
	})
}

func TestCategorizeDescription(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"DLO*RAPPI ARG", "Delivery"},
		{"YPF RUTA 2", "Transporte"},
		{"FARMACITY 221", "Salud"},
		{"MERPAGO*TIENDA", "Compras online"},
		{"COMERCIO DESCONOCIDO", entity.UncategorizedName},
	}

	for _, tt := range tests {
		if got := categorizeDescription(tt.description); got != tt.want {
			t.Errorf("categorizeDescription(%q) = %q, want %q", tt.description, got, tt.want)
		}
	}
}

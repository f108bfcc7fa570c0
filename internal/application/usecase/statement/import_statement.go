package statement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/reconciliation"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// ImportStatementInput represents the input for importing a card statement.
type ImportStatementInput struct {
	UserID         uuid.UUID
	FilePath       string // Path of the uploaded PDF in the file store
	FileName       string
	StatementMonth time.Time

	// Recipient of the reconciliation alert, when the import does not close.
	UserEmail string
	UserName  string
}

// ImportStatementOutput represents the result of the import.
type ImportStatementOutput struct {
	StatementID   uuid.UUID                         `json:"statement_id"`
	Status        entity.StatementStatus            `json:"status"`
	ItemsImported int                               `json:"items_imported"`
	Report        *valueobject.ReconciliationReport `json:"reconciliation"`
	// PaymentTransactionIDs are the card payment transactions created from
	// the declared totals, one per declared currency.
	PaymentTransactionIDs []uuid.UUID `json:"payment_transaction_ids"`
}

// ImportStatementUseCase extracts an uploaded statement PDF, reconciles it
// against the declared totals and persists the whole result.
type ImportStatementUseCase struct {
	statementRepo   adapter.StatementRepository
	transactionRepo adapter.TransactionRepository
	fileStore       adapter.StatementFileStore
	extractor       adapter.StatementExtractor
	emailQueueRepo  adapter.EmailQueueRepository
	tolerance       valueobject.ToleranceConfig
	now             func() time.Time
}

// NewImportStatementUseCase creates a new ImportStatementUseCase instance.
func NewImportStatementUseCase(
	statementRepo adapter.StatementRepository,
	transactionRepo adapter.TransactionRepository,
	fileStore adapter.StatementFileStore,
	extractor adapter.StatementExtractor,
	emailQueueRepo adapter.EmailQueueRepository,
	tolerance valueobject.ToleranceConfig,
) *ImportStatementUseCase {
	return &ImportStatementUseCase{
		statementRepo:   statementRepo,
		transactionRepo: transactionRepo,
		fileStore:       fileStore,
		extractor:       extractor,
		emailQueueRepo:  emailQueueRepo,
		tolerance:       tolerance,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Execute performs the statement import.
func (uc *ImportStatementUseCase) Execute(ctx context.Context, input ImportStatementInput) (*ImportStatementOutput, error) {
	if input.FilePath == "" {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeMissingFilePath,
			"file_path is required",
			domainerror.ErrMissingFilePath,
		)
	}
	if input.StatementMonth.IsZero() {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeInvalidStatementMonth,
			"statement_month is required",
			domainerror.ErrInvalidStatementMonth,
		)
	}
	if !uc.extractor.IsAvailable() {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeExtractorUnavailable,
			"statement extractor is not configured",
			domainerror.ErrExtractorUnavailable,
		)
	}

	month := firstOfMonth(input.StatementMonth)
	existing, err := uc.statementRepo.FindByMonth(ctx, input.UserID, month)
	if err != nil && !errors.Is(err, domainerror.ErrStatementNotFound) {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementInternalError, "failed to check existing imports", err)
	}
	if existing != nil {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementAlreadyImported,
			fmt.Sprintf("statement for %s was already imported", month.Format("2006-01")),
			domainerror.ErrStatementAlreadyImported,
		)
	}

	pdf, err := uc.fileStore.Download(ctx, input.FilePath)
	if err != nil {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementInternalError, "failed to download statement file", err)
	}

	extracted, err := uc.extractor.Extract(ctx, pdf)
	if err != nil {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeExtractionFailed,
			"failed to extract statement data",
			errors.Join(domainerror.ErrExtractionFailed, err),
		)
	}

	now := uc.now()
	statement := &entity.StatementImport{
		ID:             uuid.New(),
		UserID:         input.UserID,
		FileName:       input.FileName,
		StatementMonth: month,
		ClosingDate:    extracted.ClosingDate,
		DueDate:        extracted.DueDate,
		DeclaredARS:    extracted.DeclaredARS,
		DeclaredUSD:    extracted.DeclaredUSD,
		Status:         entity.StatementStatusCompleted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	items := buildItems(statement.ID, extracted)
	report := reconciliation.Reconcile(items, extracted.DeclaredARS, extracted.DeclaredUSD, uc.tolerance)

	if err := uc.statementRepo.Create(ctx, statement, items, report); err != nil {
		return nil, domainerror.NewStatementError(
			domainerror.ErrCodeStatementInternalError, "failed to persist statement import", err)
	}

	paymentIDs, err := uc.createPaymentTransactions(ctx, input, statement)
	if err != nil {
		return nil, err
	}

	if report.HasMismatch() {
		uc.enqueueAlert(ctx, input, statement, report)
	}

	slog.Info("statement imported",
		"statementID", statement.ID,
		"month", month.Format("2006-01"),
		"items", len(items),
		"mismatch", report.HasMismatch(),
	)

	return &ImportStatementOutput{
		StatementID:           statement.ID,
		Status:                statement.Status,
		ItemsImported:         len(items),
		Report:                report,
		PaymentTransactionIDs: paymentIDs,
	}, nil
}

// firstOfMonth normalizes any date inside a month to its first day in UTC.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// buildItems converts the extracted lines into persistable statement items,
// resolving a category per consumption line.
func buildItems(statementID uuid.UUID, extracted *entity.ExtractedStatement) []*entity.StatementItem {
	var items []*entity.StatementItem
	appendLines := func(kind entity.StatementItemKind, lines []entity.ExtractedLine, categorized bool) {
		for _, line := range lines {
			category := entity.UncategorizedName
			if categorized {
				category = categorizeDescription(line.Description)
			}
			items = append(items, &entity.StatementItem{
				ID:                 uuid.New(),
				StatementImportID:  statementID,
				Kind:               kind,
				Description:        line.Description,
				Amount:             line.Amount,
				Currency:           line.Currency,
				CategoryName:       category,
				Date:               line.Date,
				InstallmentCurrent: line.InstallmentCurrent,
				InstallmentTotal:   line.InstallmentTotal,
			})
		}
	}
	appendLines(entity.ItemKindConsumption, extracted.Consumptions, true)
	appendLines(entity.ItemKindInstallment, extracted.Installments, true)
	appendLines(entity.ItemKindTax, extracted.Taxes, false)
	appendLines(entity.ItemKindAdjustment, extracted.Adjustments, false)
	return items
}

// createPaymentTransactions records the statement bill as card payment
// transactions, one per declared currency, dated on the due date when the
// statement carries one.
func (uc *ImportStatementUseCase) createPaymentTransactions(ctx context.Context, input ImportStatementInput, statement *entity.StatementImport) ([]uuid.UUID, error) {
	paymentDate := statement.PaymentMonth()
	if statement.DueDate != nil {
		paymentDate = *statement.DueDate
	}

	declared := []struct {
		currency entity.Currency
		amount   decimal.Decimal
	}{
		{entity.CurrencyARS, statement.DeclaredARS},
		{entity.CurrencyUSD, statement.DeclaredUSD},
	}

	var ids []uuid.UUID
	for _, d := range declared {
		if !d.amount.IsPositive() {
			continue
		}
		tx := entity.NewTransaction(
			input.UserID,
			entity.TransactionTypeExpense,
			d.amount,
			d.currency,
			entity.CardPaymentCategory,
			fmt.Sprintf("Pago resumen %s", statement.StatementMonth.Format("2006-01")),
			paymentDate,
			"transferencia",
		)
		tx.StatementImportID = &statement.ID
		if err := uc.transactionRepo.Create(ctx, tx); err != nil {
			return nil, domainerror.NewStatementError(
				domainerror.ErrCodeStatementInternalError, "failed to create card payment transaction", err)
		}
		ids = append(ids, tx.ID)
	}
	return ids, nil
}

// enqueueAlert schedules the reconciliation alert email. Queueing is best
// effort; a queue failure must not fail an import that already persisted.
func (uc *ImportStatementUseCase) enqueueAlert(ctx context.Context, input ImportStatementInput, statement *entity.StatementImport, report *valueobject.ReconciliationReport) {
	if uc.emailQueueRepo == nil || input.UserEmail == "" {
		return
	}

	differences := make([]map[string]interface{}, 0, len(report.Currencies))
	for _, currency := range report.Currencies {
		if currency.IsMatched() {
			continue
		}
		differences = append(differences, map[string]interface{}{
			"currency":   string(currency.Currency),
			"declared":   currency.DeclaredTotal.String(),
			"computed":   currency.ComputedTotal.String(),
			"difference": currency.Difference.String(),
			"status":     currency.Status,
		})
	}

	job := entity.NewEmailJob(
		entity.TemplateReconciliationAlert,
		input.UserEmail,
		input.UserName,
		fmt.Sprintf("Tu resumen de %s no concilia", statement.StatementMonth.Format("2006-01")),
		map[string]interface{}{
			"file_name":       statement.FileName,
			"statement_month": statement.StatementMonth.Format("2006-01"),
			"differences":     differences,
		},
	)
	if err := uc.emailQueueRepo.Create(ctx, job); err != nil {
		slog.Error("failed to enqueue reconciliation alert",
			"statementID", statement.ID,
			"error", err,
		)
	}
}

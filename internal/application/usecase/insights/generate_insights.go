package insights

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
)

// GenerateInsightsInput represents the input for generating insights.
type GenerateInsightsInput struct {
	UserID uuid.UUID
	// Months overrides the configured lookback window when positive.
	Months int
}

// GenerateInsightsOutput represents the generated insights and run metadata.
type GenerateInsightsOutput struct {
	Insights []entity.Insight        `json:"insights"`
	Message  string                  `json:"message,omitempty"`
	Metadata entity.AnalysisMetadata `json:"metadata"`
}

// GenerateInsightsUseCase loads a user's recent activity and runs the
// analysis pipeline over it.
type GenerateInsightsUseCase struct {
	transactionRepository adapter.TransactionRepository
	statementRepository   adapter.StatementRepository
	rateSource            adapter.ExchangeRateSource
	config                Config
	now                   func() time.Time
}

// NewGenerateInsightsUseCase creates a new GenerateInsightsUseCase.
func NewGenerateInsightsUseCase(
	transactionRepository adapter.TransactionRepository,
	statementRepository adapter.StatementRepository,
	rateSource adapter.ExchangeRateSource,
	config Config,
) *GenerateInsightsUseCase {
	return &GenerateInsightsUseCase{
		transactionRepository: transactionRepository,
		statementRepository:   statementRepository,
		rateSource:            rateSource,
		config:                config,
		now:                   func() time.Time { return time.Now().UTC() },
	}
}

// Execute gathers the lookback window's transactions and statements and
// returns the ranked insights.
func (uc *GenerateInsightsUseCase) Execute(ctx context.Context, input GenerateInsightsInput) (*GenerateInsightsOutput, error) {
	months := input.Months
	if months <= 0 {
		months = uc.config.LookbackMonths
	}
	now := uc.now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	transactions, err := uc.transactionRepository.FindForAnalysis(
		ctx, input.UserID, entity.TransactionTypeExpense, since, uc.config.FetchLimit)
	if err != nil {
		return nil, domainerror.NewAnalysisError(domainerror.ErrCodeAnalysisInternalError, "failed to load analysis data", err)
	}

	statements, err := uc.loadStatements(ctx, input.UserID, since)
	if err != nil {
		return nil, err
	}

	rate := uc.resolveRate(ctx)

	result, err := Analyze(AnalysisInput{
		Transactions: transactions,
		Statements:   statements,
		Now:          now,
	}, uc.config, rate)
	if err != nil {
		return nil, err
	}

	return &GenerateInsightsOutput{
		Insights: result.Insights,
		Message:  result.Message,
		Metadata: result.Metadata,
	}, nil
}

// loadStatements fetches completed statement imports in the window together
// with their items. Statement lines shift one month forward on attribution,
// so the fetch window starts one month earlier than the transaction one.
func (uc *GenerateInsightsUseCase) loadStatements(ctx context.Context, userID uuid.UUID, since time.Time) ([]StatementRecord, error) {
	imports, err := uc.statementRepository.ListByUser(ctx, userID, since.AddDate(0, -1, 0))
	if err != nil {
		return nil, domainerror.NewAnalysisError(domainerror.ErrCodeAnalysisInternalError, "failed to load analysis data", err)
	}

	completed := make([]*entity.StatementImport, 0, len(imports))
	ids := make([]uuid.UUID, 0, len(imports))
	for _, statement := range imports {
		if statement.Status != entity.StatementStatusCompleted {
			continue
		}
		completed = append(completed, statement)
		ids = append(ids, statement.ID)
	}
	if len(completed) == 0 {
		return nil, nil
	}

	items, err := uc.statementRepository.FindItems(ctx, ids)
	if err != nil {
		return nil, domainerror.NewAnalysisError(domainerror.ErrCodeAnalysisInternalError, "failed to load analysis data", err)
	}
	byStatement := make(map[uuid.UUID][]*entity.StatementItem, len(completed))
	for _, item := range items {
		byStatement[item.StatementImportID] = append(byStatement[item.StatementImportID], item)
	}

	records := make([]StatementRecord, 0, len(completed))
	for _, statement := range completed {
		records = append(records, StatementRecord{
			Import: statement,
			Items:  byStatement[statement.ID],
		})
	}
	return records, nil
}

// resolveRate asks the rate source for the configured quote and falls back
// to the default when the source has nothing. Analysis never fails because
// a quote is missing.
func (uc *GenerateInsightsUseCase) resolveRate(ctx context.Context) decimal.Decimal {
	rate, err := uc.rateSource.GetRate(ctx, uc.config.RateSourceName)
	if err != nil || !rate.IsPositive() {
		slog.Warn("exchange rate unavailable, using default",
			"source", uc.config.RateSourceName,
			"default", uc.config.DefaultUSDRate)
		return uc.config.DefaultUSDRate
	}
	return rate
}

// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rodobedrossian/claritalacuenta-sub000/config"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/insights"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/reconciliation"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/statement"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/transaction"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/infra/server/router"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/adapters"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/cache"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/email"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/email/templates"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/controller"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/middleware"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker func() bool) (*Injector, error) {
	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	statementRepo := persistence.NewStatementRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	exchangeRateRepo := persistence.NewExchangeRateRepository(db)

	// Exchange rates are read far more often than they change
	var rateSource adapter.ExchangeRateSource = exchangeRateRepo
	if redisClient != nil {
		rateSource = cache.NewRateCache(exchangeRateRepo, redisClient, cfg.Redis.RateTTL)
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	extractor := adapters.NewGeminiExtractor(cfg.Gemini.APIKey)

	var fileStore adapter.StatementFileStore
	if cfg.Storage.Bucket != "" {
		fileStore = adapters.NewGCSFileStore(cfg.Storage.Bucket)
	} else {
		fileStore = adapters.NewLocalFileStore(cfg.Storage.LocalDir)
	}

	tolerance := valueobject.ToleranceConfig{
		Epsilon:        cfg.Reconciliation.Epsilon,
		MinorThreshold: cfg.Reconciliation.MinorThreshold,
	}

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create statement use cases
	importStatementUseCase := statement.NewImportStatementUseCase(
		statementRepo, transactionRepo, fileStore, extractor, emailQueueRepo, tolerance)
	getStatementUseCase := statement.NewGetStatementUseCase(statementRepo)
	listStatementsUseCase := statement.NewListStatementsUseCase(statementRepo)
	getAlertsUseCase := reconciliation.NewGetAlertsUseCase(statementRepo)

	// Create insight use case
	analyticsConfig := insights.Config{
		ReportingCurrency: entity.CurrencyARS,
		DefaultUSDRate:    cfg.Analytics.DefaultUSDRate,
		LookbackMonths:    cfg.Analytics.LookbackMonths,
		InsightLimit:      cfg.Analytics.InsightLimit,
		FixedCategories:   toCategorySet(cfg.Analytics.FixedCategories),
		RateSourceName:    cfg.Analytics.RateSourceName,
		FetchLimit:        cfg.Analytics.FetchLimit,
	}
	generateInsightsUseCase := insights.NewGenerateInsightsUseCase(
		transactionRepo, statementRepo, rateSource, analyticsConfig)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker)
	transactionController := controller.NewTransactionController(
		createTransactionUseCase, listTransactionsUseCase, deleteTransactionUseCase)
	statementController := controller.NewStatementController(
		importStatementUseCase, getStatementUseCase, listStatementsUseCase, getAlertsUseCase)
	insightController := controller.NewInsightController(generateInsightsUseCase)

	// Create middleware
	rateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create email worker
	var worker *email.Worker
	if cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, err
		}
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		worker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	}

	r := router.NewRouter(
		healthController,
		transactionController,
		statementController,
		insightController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: worker,
	}, nil
}

func toCategorySet(categories []string) map[string]bool {
	set := make(map[string]bool, len(categories))
	for _, category := range categories {
		set[category] = true
	}
	return set
}

// Package steps provides step definitions for the BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/insights"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/reconciliation"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/statement"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/transaction"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/infra/server/router"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/adapters"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/controller"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/dto"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/middleware"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/persistence"
	"github.com/rodobedrossian/claritalacuenta-sub000/test/integration/mock"
)

const testJWTSecret = "integration-test-secret"

// TestContext holds the per-scenario state.
type TestContext struct {
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	db             *mock.Db
	emailQueueRepo adapter.EmailQueueRepository
	extractor      *mock.Extractor
	fileStore      *mock.FileStore

	accessToken string
	userID      uuid.UUID
	userEmail   string

	createdTransactionID string
	importedStatementID  string
	lastImport           *dto.ImportStatementResponse
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers the per-scenario setup and all step
// definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerSteps(ctx)
}

// newTestContext wires the real router over the in-memory database and
// canned extractor, the same graph the injector builds in production.
func newTestContext() (*TestContext, error) {
	tc := &TestContext{
		extractor: &mock.Extractor{},
		fileStore: &mock.FileStore{Files: make(map[string][]byte)},
	}

	tc.db = mock.NewDb()
	if err := tc.db.Reset(); err != nil {
		return nil, err
	}

	gormDB := tc.db.Conn
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	statementRepo := persistence.NewStatementRepository(gormDB)
	rateSource := persistence.NewExchangeRateRepository(gormDB)
	tc.emailQueueRepo = persistence.NewEmailQueueRepository(gormDB)

	tolerance := valueobject.DefaultToleranceConfig()

	createUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	listUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	deleteUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)
	importUseCase := statement.NewImportStatementUseCase(
		statementRepo, transactionRepo, tc.fileStore, tc.extractor, tc.emailQueueRepo, tolerance)
	getUseCase := statement.NewGetStatementUseCase(statementRepo)
	listStatementsUseCase := statement.NewListStatementsUseCase(statementRepo)
	alertsUseCase := reconciliation.NewGetAlertsUseCase(statementRepo)
	generateUseCase := insights.NewGenerateInsightsUseCase(
		transactionRepo, statementRepo, rateSource, insights.DefaultConfig())

	tokenService := adapters.NewTokenService(testJWTSecret)

	healthController := controller.NewHealthController(func() bool { return true })
	transactionController := controller.NewTransactionController(createUseCase, listUseCase, deleteUseCase)
	statementController := controller.NewStatementController(
		importUseCase, getUseCase, listStatementsUseCase, alertsUseCase)
	insightController := controller.NewInsightController(generateUseCase)

	r := router.NewRouter(
		healthController,
		transactionController,
		statementController,
		insightController,
		nil,
		middleware.NewAuthMiddleware(tokenService),
	)
	tc.engine = r.Setup("test")
	tc.server = httptest.NewServer(tc.engine)

	return tc, nil
}

// signTestToken issues an access token the way the identity service does.
func signTestToken(userID uuid.UUID, email string) (string, error) {
	claims := adapters.CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
}

// doRequest performs an HTTP request against the scenario server and
// records the response.
func (tc *TestContext) doRequest(method, path string, body interface{}, token string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	return err
}

// parseBody unmarshals the last response body.
func (tc *TestContext) parseBody(out interface{}) error {
	return json.Unmarshal(tc.responseBody, out)
}

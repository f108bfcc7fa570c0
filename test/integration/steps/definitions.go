package steps

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/dto"
)

func registerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^an authenticated user$`, anAuthenticatedUser)
	ctx.Step(`^the response status is (\d+)$`, theResponseStatusIs)

	ctx.Step(`^the extractor returns a statement with declared ARS total "([^"]*)"$`, theExtractorReturnsDeclaredARS)
	ctx.Step(`^the user imports the statement "([^"]*)" for month "([^"]*)"$`, theUserImportsStatement)
	ctx.Step(`^an anonymous user imports a statement$`, anAnonymousUserImportsAStatement)
	ctx.Step(`^the reconciliation is matched$`, theReconciliationIsMatched)
	ctx.Step(`^the reconciliation is not matched$`, theReconciliationIsNotMatched)
	ctx.Step(`^listing reconciliation alerts returns (\d+) alerts$`, listingReconciliationAlertsReturns)
	ctx.Step(`^a reconciliation alert email is queued$`, aReconciliationAlertEmailIsQueued)
	ctx.Step(`^no reconciliation alert email is queued$`, noReconciliationAlertEmailIsQueued)
	ctx.Step(`^the user fetches the reconciliation of the imported statement$`, theUserFetchesTheReconciliation)
	ctx.Step(`^the statement detail lists (\d+) items$`, theStatementDetailListsItems)

	ctx.Step(`^the user creates an "([^"]*)" of "([^"]*)" in category "([^"]*)"$`, theUserCreatesATransaction)
	ctx.Step(`^the user lists transactions$`, theUserListsTransactions)
	ctx.Step(`^the user lists transactions of type "([^"]*)"$`, theUserListsTransactionsOfType)
	ctx.Step(`^the transaction list contains (\d+) transactions$`, theTransactionListContains)
	ctx.Step(`^the user deletes the created transaction$`, theUserDeletesTheCreatedTransaction)
	ctx.Step(`^a different user deletes the created transaction$`, aDifferentUserDeletesTheTransaction)

	ctx.Step(`^the user has recorded expenses across the last two months$`, theUserHasRecordedExpenses)
	ctx.Step(`^the user generates insights$`, theUserGeneratesInsights)
	ctx.Step(`^no insights are returned, only a message$`, noInsightsOnlyAMessage)
	ctx.Step(`^the insights metadata reports (\d+) transactions$`, theInsightsMetadataReports)
	ctx.Step(`^at least (\d+) insight is returned$`, atLeastInsightsAreReturned)
}

func anAuthenticatedUser(ctx context.Context) error {
	tc := GetTestContext(ctx)
	tc.userID = uuid.New()
	tc.userEmail = "usuario@example.com"

	token, err := signTestToken(tc.userID, tc.userEmail)
	if err != nil {
		return err
	}
	tc.accessToken = token
	return nil
}

func theResponseStatusIs(ctx context.Context, status int) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if tc.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d, body: %s",
			status, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func theExtractorReturnsDeclaredARS(ctx context.Context, declared string) error {
	tc := GetTestContext(ctx)

	total, err := decimal.NewFromString(declared)
	if err != nil {
		return err
	}

	firstPurchase := time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)
	secondPurchase := time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC)
	closing := time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// The itemized lines always sum to 100000 ARS; the declared total
	// from the scenario decides whether the statement reconciles.
	tc.extractor.Statement = &entity.ExtractedStatement{
		Consumptions: []entity.ExtractedLine{
			{Date: &firstPurchase, Description: "NETFLIX.COM", Amount: decimal.NewFromInt(7000), Currency: entity.CurrencyARS},
			{Date: &secondPurchase, Description: "COTO SUC 23", Amount: decimal.NewFromInt(73000), Currency: entity.CurrencyARS},
		},
		Taxes: []entity.ExtractedLine{
			{Description: "IVA 21%", Amount: decimal.NewFromInt(20000), Currency: entity.CurrencyARS},
		},
		DeclaredARS: total,
		DeclaredUSD: decimal.Zero,
		ClosingDate: &closing,
		DueDate:     &due,
	}
	return nil
}

func theUserImportsStatement(ctx context.Context, fileName, month string) error {
	tc := GetTestContext(ctx)

	filePath := "statements/" + tc.userID.String() + "/" + fileName
	tc.fileStore.Files[filePath] = []byte("%PDF-1.4 test")

	err := tc.doRequest(http.MethodPost, "/api/v1/statements/import", dto.ImportStatementRequest{
		FilePath:       filePath,
		FileName:       fileName,
		StatementMonth: month,
	}, tc.accessToken)
	if err != nil {
		return err
	}

	if tc.response.StatusCode == http.StatusCreated {
		var out dto.ImportStatementResponse
		if err := tc.parseBody(&out); err != nil {
			return err
		}
		tc.importedStatementID = out.StatementID
		tc.lastImport = &out
	}
	return nil
}

func anAnonymousUserImportsAStatement(ctx context.Context) error {
	tc := GetTestContext(ctx)
	return tc.doRequest(http.MethodPost, "/api/v1/statements/import", dto.ImportStatementRequest{
		FilePath:       "statements/resumen.pdf",
		FileName:       "resumen.pdf",
		StatementMonth: "2025-12",
	}, "")
}

func theReconciliationIsMatched(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.lastImport == nil || tc.lastImport.Reconciliation == nil {
		return fmt.Errorf("no import result recorded")
	}
	if !tc.lastImport.Reconciliation.Matched {
		return fmt.Errorf("expected a matched reconciliation, got: %+v", tc.lastImport.Reconciliation)
	}
	return nil
}

func theReconciliationIsNotMatched(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.lastImport == nil || tc.lastImport.Reconciliation == nil {
		return fmt.Errorf("no import result recorded")
	}
	if tc.lastImport.Reconciliation.Matched {
		return fmt.Errorf("expected a mismatched reconciliation, got: %+v", tc.lastImport.Reconciliation)
	}
	return nil
}

func listingReconciliationAlertsReturns(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	err := tc.doRequest(http.MethodGet, "/api/v1/statements/reconciliation-alerts", nil, tc.accessToken)
	if err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d, body: %s", tc.response.StatusCode, tc.responseBody)
	}

	var out dto.ReconciliationAlertListResponse
	if err := tc.parseBody(&out); err != nil {
		return err
	}
	if len(out.Alerts) != count {
		return fmt.Errorf("expected %d alerts, got %d", count, len(out.Alerts))
	}
	return nil
}

func aReconciliationAlertEmailIsQueued(ctx context.Context) error {
	tc := GetTestContext(ctx)
	jobs, err := tc.emailQueueRepo.GetByRecipient(context.Background(), tc.userEmail)
	if err != nil {
		return err
	}
	if len(jobs) != 1 {
		return fmt.Errorf("expected 1 queued email, got %d", len(jobs))
	}
	return nil
}

func noReconciliationAlertEmailIsQueued(ctx context.Context) error {
	tc := GetTestContext(ctx)
	jobs, err := tc.emailQueueRepo.GetByRecipient(context.Background(), tc.userEmail)
	if err != nil {
		return err
	}
	if len(jobs) != 0 {
		return fmt.Errorf("expected no queued emails, got %d", len(jobs))
	}
	return nil
}

func theUserFetchesTheReconciliation(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.importedStatementID == "" {
		return fmt.Errorf("no statement imported")
	}
	return tc.doRequest(http.MethodGet,
		"/api/v1/statements/"+tc.importedStatementID+"/reconciliation", nil, tc.accessToken)
}

func theStatementDetailListsItems(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	var out dto.StatementResponse
	if err := tc.parseBody(&out); err != nil {
		return err
	}
	if len(out.Items) != count {
		return fmt.Errorf("expected %d items, got %d", count, len(out.Items))
	}
	return nil
}

func theUserCreatesATransaction(ctx context.Context, txnType, amount, category string) error {
	tc := GetTestContext(ctx)

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return err
	}

	err = tc.doRequest(http.MethodPost, "/api/v1/transactions", map[string]interface{}{
		"type":     txnType,
		"amount":   value,
		"category": category,
		"date":     time.Now().UTC().Format("2006-01-02"),
	}, tc.accessToken)
	if err != nil {
		return err
	}

	if tc.response.StatusCode == http.StatusCreated {
		var out dto.TransactionResponse
		if err := tc.parseBody(&out); err != nil {
			return err
		}
		tc.createdTransactionID = out.ID
	}
	return nil
}

func theUserListsTransactions(ctx context.Context) error {
	tc := GetTestContext(ctx)
	return tc.doRequest(http.MethodGet, "/api/v1/transactions", nil, tc.accessToken)
}

func theUserListsTransactionsOfType(ctx context.Context, txnType string) error {
	tc := GetTestContext(ctx)
	return tc.doRequest(http.MethodGet, "/api/v1/transactions?type="+txnType, nil, tc.accessToken)
}

func theTransactionListContains(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	var out dto.TransactionListResponse
	if err := tc.parseBody(&out); err != nil {
		return err
	}
	if len(out.Transactions) != count {
		return fmt.Errorf("expected %d transactions, got %d", count, len(out.Transactions))
	}
	return nil
}

func theUserDeletesTheCreatedTransaction(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.createdTransactionID == "" {
		return fmt.Errorf("no transaction created")
	}
	return tc.doRequest(http.MethodDelete,
		"/api/v1/transactions/"+tc.createdTransactionID, nil, tc.accessToken)
}

func aDifferentUserDeletesTheTransaction(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.createdTransactionID == "" {
		return fmt.Errorf("no transaction created")
	}

	token, err := signTestToken(uuid.New(), "otro@example.com")
	if err != nil {
		return err
	}
	return tc.doRequest(http.MethodDelete,
		"/api/v1/transactions/"+tc.createdTransactionID, nil, token)
}

func theUserHasRecordedExpenses(ctx context.Context) error {
	tc := GetTestContext(ctx)

	now := time.Now().UTC()
	previousMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 14)

	expenses := []struct {
		amount float64
		date   time.Time
	}{
		{40000, now},
		{60000, now},
		{30000, previousMonth},
	}

	for _, e := range expenses {
		err := tc.doRequest(http.MethodPost, "/api/v1/transactions", map[string]interface{}{
			"type":     "expense",
			"amount":   e.amount,
			"category": "Comida",
			"date":     e.date.Format("2006-01-02"),
		}, tc.accessToken)
		if err != nil {
			return err
		}
		if tc.response.StatusCode != http.StatusCreated {
			return fmt.Errorf("failed to record expense, status %d, body: %s",
				tc.response.StatusCode, tc.responseBody)
		}
	}
	return nil
}

func theUserGeneratesInsights(ctx context.Context) error {
	tc := GetTestContext(ctx)
	return tc.doRequest(http.MethodPost, "/api/v1/insights/generate", nil, tc.accessToken)
}

func noInsightsOnlyAMessage(ctx context.Context) error {
	tc := GetTestContext(ctx)
	var out dto.GenerateInsightsResponse
	if err := tc.parseBody(&out); err != nil {
		return err
	}
	if len(out.Insights) != 0 {
		return fmt.Errorf("expected no insights, got %d", len(out.Insights))
	}
	if out.Message == "" {
		return fmt.Errorf("expected a non-empty message")
	}
	return nil
}

func theInsightsMetadataReports(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	var out dto.GenerateInsightsResponse
	if err := tc.parseBody(&out); err != nil {
		return err
	}
	if out.Metadata.TotalTransactions != count {
		return fmt.Errorf("expected %d analyzed transactions, got %d", count, out.Metadata.TotalTransactions)
	}
	return nil
}

func atLeastInsightsAreReturned(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	var out dto.GenerateInsightsResponse
	if err := tc.parseBody(&out); err != nil {
		return err
	}
	if len(out.Insights) < count {
		return fmt.Errorf("expected at least %d insights, got %d", count, len(out.Insights))
	}
	return nil
}

// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/reconciliation"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/statement"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/dto"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/middleware"
)

// StatementController handles statement import and reconciliation endpoints.
type StatementController struct {
	importUseCase *statement.ImportStatementUseCase
	getUseCase    *statement.GetStatementUseCase
	listUseCase   *statement.ListStatementsUseCase
	alertsUseCase *reconciliation.GetAlertsUseCase
}

// NewStatementController creates a new statement controller instance.
func NewStatementController(
	importUseCase *statement.ImportStatementUseCase,
	getUseCase *statement.GetStatementUseCase,
	listUseCase *statement.ListStatementsUseCase,
	alertsUseCase *reconciliation.GetAlertsUseCase,
) *StatementController {
	return &StatementController{
		importUseCase: importUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		alertsUseCase: alertsUseCase,
	}
}

// Import handles POST /statements/import requests.
func (c *StatementController) Import(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ImportStatementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	month, err := time.Parse("2006-01", req.StatementMonth)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid statement month format. Use YYYY-MM",
			Code:  string(domainerror.ErrCodeInvalidStatementMonth),
		})
		return
	}

	input := statement.ImportStatementInput{
		UserID:         userID,
		FilePath:       req.FilePath,
		FileName:       req.FileName,
		StatementMonth: month,
	}
	if email, ok := middleware.GetUserEmailFromContext(ctx); ok {
		input.UserEmail = email
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleStatementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToImportStatementResponse(output))
}

// List handles GET /statements requests.
func (c *StatementController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := statement.ListStatementsInput{UserID: userID}
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		if months, err := strconv.Atoi(monthsStr); err == nil {
			input.Months = months
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleStatementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementListResponse(output))
}

// Get handles GET /statements/:id requests.
func (c *StatementController) Get(ctx *gin.Context) {
	c.getStatement(ctx, false)
}

// GetReconciliation handles GET /statements/:id/reconciliation requests.
// It returns the statement with its itemized lines and reconciliation report.
func (c *StatementController) GetReconciliation(ctx *gin.Context) {
	c.getStatement(ctx, true)
}

func (c *StatementController) getStatement(ctx *gin.Context, withItems bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	statementID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid statement ID format",
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), statement.GetStatementInput{
		UserID:      userID,
		StatementID: statementID,
		WithItems:   withItems,
	})
	if err != nil {
		c.handleStatementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementResponse(output))
}

// Alerts handles GET /statements/reconciliation-alerts requests.
func (c *StatementController) Alerts(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := reconciliation.GetAlertsInput{}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.alertsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleStatementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReconciliationAlertListResponse(output))
}

// handleStatementError handles statement errors and returns appropriate HTTP responses.
func (c *StatementController) handleStatementError(ctx *gin.Context, err error) {
	var stmErr *domainerror.StatementError
	if errors.As(err, &stmErr) {
		ctx.JSON(c.getStatusCodeForStatementError(stmErr.Code), dto.ErrorResponse{
			Error: stmErr.Message,
			Code:  string(stmErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForStatementError maps statement error codes to HTTP status codes.
func (c *StatementController) getStatusCodeForStatementError(code domainerror.StatementErrorCode) int {
	switch code {
	case domainerror.ErrCodeStatementNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingFilePath,
		domainerror.ErrCodeInvalidStatementMonth:
		return http.StatusBadRequest
	case domainerror.ErrCodeStatementAlreadyImported:
		return http.StatusConflict
	case domainerror.ErrCodeExtractionFailed,
		domainerror.ErrCodeExtractorUnavailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/insights"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/dto"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/integration/entrypoint/middleware"
)

// InsightController handles insight generation endpoints.
type InsightController struct {
	generateUseCase *insights.GenerateInsightsUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(generateUseCase *insights.GenerateInsightsUseCase) *InsightController {
	return &InsightController{generateUseCase: generateUseCase}
}

// Generate handles POST /insights/generate requests.
func (c *InsightController) Generate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := insights.GenerateInsightsInput{UserID: userID}

	var req dto.GenerateInsightsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body: " + err.Error(),
			})
			return
		}
		input.Months = req.MonthsToAnalyze
	}
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		if months, err := strconv.Atoi(monthsStr); err == nil {
			input.Months = months
		}
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAnalysisError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGenerateInsightsResponse(output))
}

// handleAnalysisError handles analysis errors and returns appropriate HTTP responses.
func (c *InsightController) handleAnalysisError(ctx *gin.Context, err error) {
	var anlErr *domainerror.AnalysisError
	if errors.As(err, &anlErr) {
		status := http.StatusInternalServerError
		switch anlErr.Code {
		case domainerror.ErrCodeInvalidRate, domainerror.ErrCodeUnsupportedCurrency:
			status = http.StatusBadRequest
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: anlErr.Message,
			Code:  string(anlErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

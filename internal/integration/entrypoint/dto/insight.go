package dto

import (
	"time"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/insights"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// GenerateInsightsRequest represents the optional request body for
// insight generation. A zero months value falls back to the configured
// lookback window.
type GenerateInsightsRequest struct {
	MonthsToAnalyze int `json:"months_to_analyze" binding:"omitempty,min=1,max=24"`
}

// InsightActionResponse represents the optional navigation hint of an insight.
type InsightActionResponse struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// InsightResponse represents one generated insight.
type InsightResponse struct {
	Type        string                 `json:"type"`
	Priority    string                 `json:"priority"`
	Category    *string                `json:"category"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Data        entity.InsightData     `json:"data"`
	Action      *InsightActionResponse `json:"action,omitempty"`
}

// AnalysisMetadataResponse describes the inputs one analysis run covered.
type AnalysisMetadataResponse struct {
	AnalyzedMonths             int       `json:"analyzed_months"`
	TotalTransactions          int       `json:"total_transactions"`
	TotalStatementTransactions int       `json:"total_statement_transactions"`
	GeneratedAt                time.Time `json:"generated_at"`
}

// GenerateInsightsResponse represents the response for insight generation.
type GenerateInsightsResponse struct {
	Insights []InsightResponse        `json:"insights"`
	Message  string                   `json:"message,omitempty"`
	Metadata AnalysisMetadataResponse `json:"metadata"`
}

// ToGenerateInsightsResponse converts a GenerateInsightsOutput to its response DTO.
func ToGenerateInsightsResponse(output *insights.GenerateInsightsOutput) GenerateInsightsResponse {
	responses := make([]InsightResponse, 0, len(output.Insights))
	for _, insight := range output.Insights {
		response := InsightResponse{
			Type:        string(insight.Kind),
			Priority:    string(insight.Priority),
			Category:    insight.Category,
			Title:       insight.Title,
			Description: insight.Description,
			Data:        insight.Data,
		}
		if insight.Action != nil {
			response.Action = &InsightActionResponse{
				Label: insight.Action.Label,
				Route: insight.Action.Route,
			}
		}
		responses = append(responses, response)
	}

	return GenerateInsightsResponse{
		Insights: responses,
		Message:  output.Message,
		Metadata: AnalysisMetadataResponse{
			AnalyzedMonths:             output.Metadata.AnalyzedMonths,
			TotalTransactions:          output.Metadata.TotalTransactions,
			TotalStatementTransactions: output.Metadata.TotalStatementTransactions,
			GeneratedAt:                output.Metadata.GeneratedAt,
		},
	}
}

package dto

import (
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/usecase/reconciliation"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/valueobject"
)

// CurrencyReconciliationResponse represents one currency's reconciliation result.
type CurrencyReconciliationResponse struct {
	Currency            string `json:"currency"`
	ComputedConsumption string `json:"computed_consumption"`
	ComputedTaxes       string `json:"computed_taxes"`
	ComputedAdjustments string `json:"computed_adjustments"`
	ComputedTotal       string `json:"computed_total"`
	DeclaredTotal       string `json:"declared_total"`
	Difference          string `json:"difference"`
	Status              string `json:"status"`
	Severity            string `json:"severity"`
}

// ReconciliationResponse represents the reconciliation of one statement.
type ReconciliationResponse struct {
	Matched    bool                             `json:"matched"`
	Currencies []CurrencyReconciliationResponse `json:"currencies"`
}

// ReconciliationAlertResponse represents one statement that did not reconcile.
type ReconciliationAlertResponse struct {
	StatementID    string                           `json:"statement_id"`
	FileName       string                           `json:"file_name"`
	StatementMonth string                           `json:"statement_month"`
	Currencies     []CurrencyReconciliationResponse `json:"currencies"`
}

// ReconciliationAlertListResponse represents the list of open alerts.
type ReconciliationAlertListResponse struct {
	Alerts []ReconciliationAlertResponse `json:"alerts"`
}

func toCurrencyReconciliationResponses(currencies []valueobject.CurrencyReconciliation) []CurrencyReconciliationResponse {
	responses := make([]CurrencyReconciliationResponse, 0, len(currencies))
	for _, c := range currencies {
		responses = append(responses, CurrencyReconciliationResponse{
			Currency:            string(c.Currency),
			ComputedConsumption: c.ComputedConsumption.String(),
			ComputedTaxes:       c.ComputedTaxes.String(),
			ComputedAdjustments: c.ComputedAdjustments.String(),
			ComputedTotal:       c.ComputedTotal.String(),
			DeclaredTotal:       c.DeclaredTotal.String(),
			Difference:          c.Difference.String(),
			Status:              c.Status,
			Severity:            string(c.Severity),
		})
	}
	return responses
}

// ToReconciliationResponse converts a ReconciliationReport to its response DTO.
func ToReconciliationResponse(report *valueobject.ReconciliationReport) ReconciliationResponse {
	return ReconciliationResponse{
		Matched:    !report.HasMismatch(),
		Currencies: toCurrencyReconciliationResponses(report.Currencies),
	}
}

// ToReconciliationAlertListResponse converts a GetAlertsOutput to its response DTO.
func ToReconciliationAlertListResponse(output *reconciliation.GetAlertsOutput) ReconciliationAlertListResponse {
	alerts := make([]ReconciliationAlertResponse, 0, len(output.Alerts))
	for _, alert := range output.Alerts {
		alerts = append(alerts, ReconciliationAlertResponse{
			StatementID:    alert.StatementID.String(),
			FileName:       alert.FileName,
			StatementMonth: alert.StatementMonth.Format("2006-01"),
			Currencies:     toCurrencyReconciliationResponses(alert.Currencies),
		})
	}
	return ReconciliationAlertListResponse{Alerts: alerts}
}

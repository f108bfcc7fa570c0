// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// GeminiExtractor implements the StatementExtractor using Google Gemini.
type GeminiExtractor struct {
	apiKey    string
	modelName string
}

// NewGeminiExtractor creates a new Gemini extractor instance.
func NewGeminiExtractor(apiKey string) adapter.StatementExtractor {
	return &GeminiExtractor{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini extractor is properly configured.
func (s *GeminiExtractor) IsAvailable() bool {
	return s.apiKey != ""
}

// Extract sends the statement PDF to Gemini and parses the structured result.
func (s *GeminiExtractor) Extract(ctx context.Context, pdf []byte) (*entity.ExtractedStatement, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini extractor is not configured")
	}

	// Create client
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	// Get the model
	model := client.GenerativeModel(s.modelName)

	// Configure model for JSON output
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	// Generate response from the PDF plus the extraction prompt
	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: "application/pdf", Data: pdf},
		genai.Text(s.buildPrompt()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	// Parse response
	extracted, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return extracted, nil
}

// buildPrompt creates the extraction prompt for Gemini.
func (s *GeminiExtractor) buildPrompt() string {
	var sb strings.Builder

	sb.WriteString(`Sos un experto en lectura de resúmenes de tarjeta de crédito argentinos. Tu tarea es extraer del PDF adjunto cada línea del resumen y los totales declarados por el banco.

Clasificá cada línea en exactamente una de estas cuatro listas:
- "consumos": compras del período, en pesos o en dólares. Los reintegros y devoluciones van acá con monto negativo.
- "cuotas": compras en cuotas. Cuando el resumen muestra "Cuota 03/12" o similar, completá installment_current e installment_total.
- "impuestos": impuestos, percepciones, sellados, IVA, intereses y comisiones del banco.
- "ajustes": saldos anteriores, pagos recibidos y cualquier otro ajuste que no sea consumo ni impuesto.

Para cada línea devolvé:
{
  "date": "YYYY-MM-DD" o null si la línea no tiene fecha,
  "description": "texto tal como figura en el resumen",
  "amount": número (negativo para reintegros y pagos),
  "currency": "ARS" o "USD",
  "installment_current": número o null,
  "installment_total": número o null
}

Además del detalle, devolvé los totales que el banco declara como saldo a pagar:
- "declared_ars": total en pesos declarado por el banco
- "declared_usd": total en dólares declarado por el banco
- "closing_date": fecha de cierre "YYYY-MM-DD" o null
- "due_date": fecha de vencimiento "YYYY-MM-DD" o null

REGLAS IMPORTANTES:
- No inventes líneas ni totales. Si un valor no figura en el PDF, usá 0 para montos y null para fechas.
- No sumes vos los totales: declared_ars y declared_usd son los que imprime el banco, no tu cálculo.
- Mantené las descripciones tal cual aparecen, sin traducir ni normalizar.
- Usá punto como separador decimal y no incluyas separadores de miles.

FORMATO DE RESPUESTA: devolvé solo un objeto JSON con las claves consumos, cuotas, impuestos, ajustes, declared_ars, declared_usd, closing_date y due_date, sin texto adicional.
`)

	return sb.String()
}

// geminiLine represents one raw line in the Gemini response.
type geminiLine struct {
	Date               *string  `json:"date"`
	Description        string   `json:"description"`
	Amount             *float64 `json:"amount"`
	Currency           string   `json:"currency"`
	InstallmentCurrent *int     `json:"installment_current"`
	InstallmentTotal   *int     `json:"installment_total"`
}

// geminiStatement represents the raw response from Gemini.
type geminiStatement struct {
	Consumptions []geminiLine `json:"consumos"`
	Installments []geminiLine `json:"cuotas"`
	Taxes        []geminiLine `json:"impuestos"`
	Adjustments  []geminiLine `json:"ajustes"`
	DeclaredARS  *float64     `json:"declared_ars"`
	DeclaredUSD  *float64     `json:"declared_usd"`
	ClosingDate  *string      `json:"closing_date"`
	DueDate      *string      `json:"due_date"`
}

// parseResponse parses the Gemini response into an ExtractedStatement.
func (s *GeminiExtractor) parseResponse(resp *genai.GenerateContentResponse) (*entity.ExtractedStatement, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	// Get the text content from the response
	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	// Parse JSON
	var raw geminiStatement
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	return &entity.ExtractedStatement{
		Consumptions: convertLines(raw.Consumptions),
		Installments: convertLines(raw.Installments),
		Taxes:        convertLines(raw.Taxes),
		Adjustments:  convertLines(raw.Adjustments),
		DeclaredARS:  coerceAmount(raw.DeclaredARS),
		DeclaredUSD:  coerceAmount(raw.DeclaredUSD),
		ClosingDate:  parseDate(raw.ClosingDate),
		DueDate:      parseDate(raw.DueDate),
	}, nil
}

// convertLines maps raw Gemini lines into extracted lines. Missing amounts
// become zero and unparseable dates become nil so one bad line never
// rejects the whole statement.
func convertLines(lines []geminiLine) []entity.ExtractedLine {
	converted := make([]entity.ExtractedLine, 0, len(lines))
	for _, line := range lines {
		converted = append(converted, entity.ExtractedLine{
			Date:               parseDate(line.Date),
			Description:        strings.TrimSpace(line.Description),
			Amount:             coerceAmount(line.Amount),
			Currency:           parseCurrency(line.Currency),
			InstallmentCurrent: line.InstallmentCurrent,
			InstallmentTotal:   line.InstallmentTotal,
		})
	}
	return converted
}

func coerceAmount(value *float64) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*value)
}

func parseCurrency(value string) entity.Currency {
	if strings.EqualFold(strings.TrimSpace(value), string(entity.CurrencyUSD)) {
		return entity.CurrencyUSD
	}
	return entity.CurrencyARS
}

func parseDate(value *string) *time.Time {
	if value == nil {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*value))
	if err != nil {
		return nil
	}
	return &parsed
}

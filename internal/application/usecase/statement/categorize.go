// Package statement contains statement import-related use cases.
package statement

import (
	"strings"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// categoryKeywords maps merchant keywords to display categories. Matching is
// case-insensitive on the item description. First match wins, so more
// specific keywords go before generic ones.
var categoryKeywords = []struct {
	keywords []string
	category string
}{
	{[]string{"netflix", "spotify", "youtube", "disney", "hbo", "prime video", "chatgpt", "openai", "icloud", "google one"}, "Suscripciones"},
	{[]string{"pedidosya", "rappi", "mcdonald", "burger", "mostaza", "restaurante", "parrilla", "cafe", "café"}, "Delivery"},
	{[]string{"coto", "carrefour", "jumbo", "dia%", "supermercado", "chino", "verduleria", "verdulería", "panaderia", "panadería"}, "Comida"},
	{[]string{"farmacity", "farmacia", "osde", "swiss medical", "medicus"}, "Salud"},
	{[]string{"ypf", "shell", "axion", "puma energy", "estacionamiento", "peaje", "sube", "cabify", "uber", "didi"}, "Transporte"},
	{[]string{"edenor", "edesur", "metrogas", "aysa", "telecom", "personal", "movistar", "claro", "fibertel"}, "Servicios"},
	{[]string{"mercadopago", "mercado pago", "merpago", "mercadolibre", "meli"}, "Compras online"},
	{[]string{"zara", "nike", "adidas", "dafiti", "indumentaria"}, "Ropa"},
	{[]string{"cine", "hoyts", "cinemark", "teatro", "ticketek"}, "Entretenimiento"},
}

// categorizeDescription resolves a display category for a statement line
// from its merchant description. Unknown merchants stay uncategorized and
// can be fixed by hand later.
func categorizeDescription(description string) string {
	normalized := strings.ToLower(description)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(normalized, keyword) {
				return group.category
			}
		}
	}
	return entity.UncategorizedName
}

// Package insights contains the transaction analytics pipeline use cases.
package insights

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// formatARS renders an amount in es-AR currency style with no decimal
// places, e.g. "$ 1.234.567". Insight copy is user-facing Spanish, so the
// numbers follow the same locale.
func formatARS(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	var sb strings.Builder
	if negative {
		sb.WriteString("-")
	}
	sb.WriteString("$ ")

	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(d)
	}

	return sb.String()
}

// formatUSD renders a USD amount with two decimal places, e.g. "$12.50".
func formatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// capitalize upper-cases the first rune of a string.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

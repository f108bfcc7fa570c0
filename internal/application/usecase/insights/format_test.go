// Package insights contains the transaction analytics pipeline use cases.
package insights

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatARS(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "$ 0"},
		{"small", decimal.NewFromInt(950), "$ 950"},
		{"thousands", decimal.NewFromInt(1234), "$ 1.234"},
		{"millions", decimal.NewFromInt(1234567), "$ 1.234.567"},
		{"rounds decimals away", decimal.NewFromFloat(1500.75), "$ 1.501"},
		{"negative", decimal.NewFromInt(-42500), "-$ 42.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatARS(tt.amount); got != tt.want {
				t.Errorf("formatARS(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatUSD(t *testing.T) {
	if got := formatUSD(decimal.NewFromFloat(12.5)); got != "$12.50" {
		t.Errorf("expected $12.50, got %q", got)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"comida", "Comida"},
		{"ñoquis del 29", "Ñoquis del 29"},
		{"Ya mayúscula", "Ya mayúscula"},
	}

	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

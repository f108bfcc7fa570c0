package insights

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
	domainerror "github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/error"
)

func TestNewConverter_RejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := newConverter(entity.CurrencyARS, rate)
		if err == nil {
			t.Fatalf("expected error for rate %s", rate)
		}
		if !errors.Is(err, domainerror.ErrInvalidRate) {
			t.Errorf("expected ErrInvalidRate, got %v", err)
		}
	}
}

func TestConverter_Normalize(t *testing.T) {
	conv, err := newConverter(entity.CurrencyARS, decimal.NewFromInt(1200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("same currency passes through", func(t *testing.T) {
		got, err := conv.Normalize(decimal.NewFromInt(5000), entity.CurrencyARS)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("expected 5000, got %s", got)
		}
	})

	t.Run("USD converts at the rate", func(t *testing.T) {
		got, err := conv.Normalize(decimal.NewFromInt(10), entity.CurrencyUSD)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(decimal.NewFromInt(12000)) {
			t.Errorf("expected 12000, got %s", got)
		}
	})

	t.Run("unknown currency is rejected", func(t *testing.T) {
		_, err := conv.Normalize(decimal.NewFromInt(10), entity.Currency("EUR"))
		if !errors.Is(err, domainerror.ErrUnsupportedCurrency) {
			t.Errorf("expected ErrUnsupportedCurrency, got %v", err)
		}
	})
}

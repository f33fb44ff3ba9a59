package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/expenses/internal/models"
)

func currency(code string) *models.Currency {
	return &models.Currency{Code: models.String(code)}
}

func TestReportTotals(t *testing.T) {
	usd := currency("USD")
	eur := currency("EUR")

	tests := []struct {
		name         string
		items        []*models.LineItem
		wantErr      bool
		validateFunc func(t *testing.T, totals []CurrencyTotal)
	}{
		{
			name: "sums per currency sorted by code",
			items: []*models.LineItem{
				{Amount: models.Float(20.0), Currency: usd},
				{Amount: models.Float(12.5), Currency: eur},
				{Amount: models.Float(10.25), Currency: usd},
			},
			validateFunc: func(t *testing.T, totals []CurrencyTotal) {
				if len(totals) != 2 {
					t.Fatalf("expected 2 totals, got %d", len(totals))
				}
				if totals[0].Code != "EUR" || totals[1].Code != "USD" {
					t.Errorf("order: got %s, %s", totals[0].Code, totals[1].Code)
				}
				if math.Abs(totals[1].Total-30.25) > 0.001 {
					t.Errorf("USD total = %v, want 30.25", totals[1].Total)
				}
				if totals[1].Items != 2 {
					t.Errorf("USD items = %d, want 2", totals[1].Items)
				}
			},
		},
		{
			name: "items without amount are skipped",
			items: []*models.LineItem{
				{Currency: usd},
				{Amount: models.Float(5), Currency: usd},
			},
			validateFunc: func(t *testing.T, totals []CurrencyTotal) {
				if len(totals) != 1 || totals[0].Items != 1 || totals[0].Total != 5 {
					t.Errorf("unexpected totals: %+v", totals)
				}
			},
		},
		{
			name:  "no items",
			items: nil,
			validateFunc: func(t *testing.T, totals []CurrencyTotal) {
				if len(totals) != 0 {
					t.Errorf("expected no totals, got %+v", totals)
				}
			},
		},
		{
			name:    "missing currency should error",
			items:   []*models.LineItem{{Amount: models.Float(5)}},
			wantErr: true,
		},
		{
			name:    "unresolved currency should error",
			items:   []*models.LineItem{{Amount: models.Float(5), Currency: models.Ref[models.Currency](3)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := ReportTotals(tt.items)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReportTotals() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, totals)
			}
		})
	}
}

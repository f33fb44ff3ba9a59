package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/expenses/internal/models"
)

// CurrencyTotal is the sum of a report's line items in one currency.
type CurrencyTotal struct {
	Code  string  `json:"code"`
	Total float64 `json:"total"`
	Items int     `json:"items"`
}

// ReportTotals sums line item amounts per currency code, sorted by code.
// Items without an amount are skipped; an item without a resolved currency
// code cannot be attributed and is an error.
func ReportTotals(items []*models.LineItem) ([]CurrencyTotal, error) {
	byCode := make(map[string]*CurrencyTotal)

	for i, item := range items {
		if item.Amount == nil {
			continue
		}
		if item.Currency == nil || item.Currency.Code == nil {
			return nil, fmt.Errorf("line item %d has no currency", itemID(item, i))
		}

		code := *item.Currency.Code
		total, ok := byCode[code]
		if !ok {
			total = &CurrencyTotal{Code: code}
			byCode[code] = total
		}
		total.Total += *item.Amount
		total.Items++
	}

	totals := make([]CurrencyTotal, 0, len(byCode))
	for _, total := range byCode {
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Code < totals[j].Code
	})
	return totals, nil
}

// itemID names an item in errors: its id if stored, else its position.
func itemID(item *models.LineItem, index int) int64 {
	if id, ok := models.IDOf(item); ok {
		return id
	}
	return int64(index)
}

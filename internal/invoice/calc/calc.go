// Package calc computes invoice money fields from line items and a tax
// rate. All arithmetic runs on decimals and every derived value is rounded
// to two places, so recomputing an already computed invoice is a no-op.
package calc

import (
	"strings"

	"github.com/facturio/facturio/internal/invoice/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Items     []domain.LineItem
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ParseAmount parses a non-negative decimal string. Malformed or negative
// input is an error, never a silent zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidItems
	}
	if value.IsNegative() {
		return decimal.Decimal{}, domain.ErrInvalidItems
	}
	return value, nil
}

// ParseTaxRate parses a tax rate percentage between 0 and 100 inclusive.
func ParseTaxRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidTaxRate
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return decimal.Decimal{}, domain.ErrInvalidTaxRate
	}
	return rate, nil
}

// BuildItems converts raw inputs into line items with computed amounts.
// At least one item is required and each needs a description.
func BuildItems(inputs []domain.LineItemInput) ([]domain.LineItem, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidItems
	}

	items := make([]domain.LineItem, 0, len(inputs))
	for _, input := range inputs {
		description := strings.TrimSpace(input.Description)
		if description == "" {
			return nil, domain.ErrInvalidItems
		}
		quantity, err := ParseAmount(input.Quantity)
		if err != nil {
			return nil, err
		}
		rate, err := ParseAmount(input.Rate)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.LineItem{
			Description: description,
			Quantity:    quantity,
			Rate:        rate,
			Amount:      quantity.Mul(rate).Round(2),
		})
	}
	return items, nil
}

// Compute derives subtotal, tax amount and total from already built items.
func Compute(items []domain.LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	subtotal = subtotal.Round(2)

	taxAmount := subtotal.Mul(taxRate).Div(hundred).Round(2)
	return Totals{
		Items:     items,
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount).Round(2),
	}
}
